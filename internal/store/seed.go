package store

// NewMemoryWithDemoData builds a Memory repository preloaded with the sample
// candidate and position records used by the chat assistant and the examples.
func NewMemoryWithDemoData() *Memory {
	m := NewMemory()

	for _, p := range demoProfiles() {
		m.profiles = append(m.profiles, p)
	}
	for _, p := range demoPositions() {
		m.positions = append(m.positions, p)
	}

	return m
}

func demoProfiles() []*Profile {
	return []*Profile{
		{
			ID:          "C001",
			Name:        "Alice Johnson",
			Description: "Senior Python Developer with 10 years experience",
			Skills:      []string{"Python", "Django", "Machine Learning"},
			Years:       10,
			Location:    "San Francisco",
		},
		{
			ID:          "C002",
			Name:        "Bob Smith",
			Description: "Python backend engineer specializing in APIs",
			Skills:      []string{"Python", "FastAPI", "PostgreSQL"},
			Years:       6,
			Location:    "New York",
		},
		{
			ID:          "C003",
			Name:        "Carol Davis",
			Description: "Frontend Developer expert in React and Vue",
			Skills:      []string{"React", "Vue", "TypeScript"},
			Years:       5,
			Location:    "Austin",
		},
		{
			ID:          "C004",
			Name:        "David Lee",
			Description: "Data Scientist specialized in Machine Learning",
			Skills:      []string{"Python", "ML", "TensorFlow"},
			Years:       8,
			Location:    "Boston",
		},
		{
			ID:          "C005",
			Name:        "Erin Novak",
			Description: "DevOps Engineer with Kubernetes experience",
			Skills:      []string{"Kubernetes", "Docker", "Terraform"},
			Years:       7,
			Location:    "Seattle",
		},
		{
			ID:          "C006",
			Name:        "Frank Ortiz",
			Description: "Full Stack Developer Python and React",
			Skills:      []string{"Python", "React", "JavaScript"},
			Years:       4,
			Location:    "Denver",
		},
	}
}

func demoPositions() []*Position {
	return []*Position{
		{
			ID:             "J001",
			Title:          "Senior Backend Python Developer",
			Description:    "We are looking for a senior backend developer with python expertise",
			RequiredSkills: []string{"Python", "Backend", "APIs"},
			YearsRequired:  5,
			SalaryRange:    "$120k-$150k",
		},
		{
			ID:             "J002",
			Title:          "Frontend React Developer",
			Description:    "Frontend developer needed for react-based web application",
			RequiredSkills: []string{"React", "JavaScript", "CSS"},
			YearsRequired:  3,
			SalaryRange:    "$100k-$130k",
		},
		{
			ID:             "J003",
			Title:          "Machine Learning Engineer",
			Description:    "ML engineer to build and deploy machine learning models",
			RequiredSkills: []string{"Python", "ML", "Deep Learning"},
			YearsRequired:  5,
			SalaryRange:    "$130k-$160k",
		},
		{
			ID:             "J004",
			Title:          "DevOps Engineer",
			Description:    "DevOps engineer for kubernetes and docker based infrastructure",
			RequiredSkills: []string{"Kubernetes", "Docker", "CI/CD"},
			YearsRequired:  4,
			SalaryRange:    "$110k-$140k",
		},
	}
}
