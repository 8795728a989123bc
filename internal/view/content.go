package view

// Link is a labelled navigation or social link.
type Link struct {
	Label string
	Href  string
	Icon  string
}

// Expertise is one card of the about section.
type Expertise struct {
	Icon        string
	Title       string
	Description string
}

// ContactItem is one row of the contact details list.
type ContactItem struct {
	Icon  string
	Label string
	Value string
	Href  string
}

// Content is the static copy of the landing page.
type Content struct {
	Greeting     string
	Name         string
	Role         string
	Intro        string
	HeroLinks    []Link
	AboutIntro   string
	Expertise    []Expertise
	Skills       []string
	ContactInfo  []ContactItem
	ProjectKinds []string
	Tagline      string
	QuickLinks   []Link
	SocialLinks  []Link
}

// DefaultContent returns the copy shown on the site.
func DefaultContent() Content {
	return Content{
		Greeting: "Hello, I'm",
		Name:     "Alex Chen",
		Role:     "UI/UX Developer & Digital Designer",
		Intro: "I craft digital experiences that delight users and drive business growth. " +
			"Specializing in modern web design, mobile interfaces, and user-centered solutions.",
		HeroLinks: []Link{
			{Label: "Email", Href: "mailto:alex.chen@example.com", Icon: "mail"},
			{Label: "GitHub", Href: "https://github.com", Icon: "github"},
			{Label: "LinkedIn", Href: "https://linkedin.com", Icon: "linkedin"},
		},
		AboutIntro: "With over 5 years of experience in digital design and development, I bridge the gap " +
			"between beautiful design and functional code. I believe great products are born from " +
			"the intersection of user needs, business goals, and technical possibilities.",
		Expertise: []Expertise{
			{Icon: "palette", Title: "Visual Design", Description: "Creating beautiful, modern interfaces that captivate and engage users while maintaining brand consistency."},
			{Icon: "code", Title: "Frontend Development", Description: "Building responsive, performant web applications with modern technologies and best practices."},
			{Icon: "users", Title: "User Experience", Description: "Conducting user research and designing intuitive experiences that solve real problems."},
			{Icon: "lightbulb", Title: "Product Strategy", Description: "Collaborating with teams to define product vision and create solutions that drive business goals."},
		},
		Skills: []string{
			"Figma", "Adobe XD", "Sketch", "Prototyping", "User Research",
			"React", "TypeScript", "Tailwind CSS", "Next.js", "Framer Motion",
		},
		ContactInfo: []ContactItem{
			{Icon: "mail", Label: "Email", Value: "alex.chen@example.com", Href: "mailto:alex.chen@example.com"},
			{Icon: "phone", Label: "Phone", Value: "+1 (555) 123-4567", Href: "tel:+15551234567"},
			{Icon: "map-pin", Label: "Location", Value: "San Francisco, CA"},
		},
		ProjectKinds: []string{
			"Web Design & Development",
			"Mobile App Design",
			"UI/UX Consultation",
			"Design System",
			"Other",
		},
		Tagline: "Creating digital experiences that inspire and engage users through thoughtful design and development.",
		QuickLinks: []Link{
			{Label: "About", Href: "/#about"},
			{Label: "Portfolio", Href: "/#portfolio"},
			{Label: "All Projects", Href: "/projects"},
			{Label: "Contact", Href: "/#contact"},
		},
		SocialLinks: []Link{
			{Label: "GitHub", Href: "https://imapeksha.github.io/Portfolio/", Icon: "github"},
			{Label: "LinkedIn", Href: "https://www.linkedin.com/in/apeksha-d-uiux/", Icon: "linkedin"},
			{Label: "Email", Href: "mailto:apekshad90@gmail.com", Icon: "mail"},
		},
	}
}
