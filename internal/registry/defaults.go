// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package registry

import "landingkit/internal/models"

// builtinTemplates returns the five landing page templates in the order
// the gallery shows them.
func builtinTemplates() []models.Template {
	return []models.Template{
		recruitingTemplate(),
		clientTemplate(),
		hybridTemplate(),
		latinoUSATemplate(),
		internationalTemplate(),
	}
}

func recruitingTemplate() models.Template {
	return models.Template{
		ID:          models.TemplateRecruiting,
		Name:        "Recruiting",
		Description: "Attract new agents to your team with a career-focused page.",
		Color:       "bg-green-500",
		DefaultContent: models.Content{
			Headline:    "Build a Career That Builds Your Future",
			Subheadline: "Join a team that invests in your growth, your income and your freedom.",
			Sections: map[string]any{
				"whyJoinUs": section("Why Join Our Team",
					item("trending-up", "Unlimited Income", "Your earnings grow with your effort, not a salary cap."),
					item("clock", "Flexible Schedule", "Work part time or full time around the life you want."),
					item("graduation-cap", "Training Provided", "Step-by-step mentoring from licensing to leadership."),
				),
				"idealCandidate": map[string]any{
					"title":       "Who We Are Looking For",
					"description": "No finance background required. We look for people who want more.",
					"items": []any{
						"Self-motivated and coachable",
						"Enjoys helping families",
						"Wants to build a business",
					},
				},
				"whatWeOffer": section("What We Offer",
					item("award", "Recognition", "Bonuses, trips and awards for top performers."),
					item("users", "Mentorship", "A leader who is personally invested in your success."),
					item("briefcase", "Business Ownership", "Build your own agency with residual income."),
				),
				"nextSteps": section("Your Next Steps",
					step("Apply", "Fill out the short form below."),
					step("Meet", "Attend a 30 minute overview call."),
					step("Launch", "Get licensed and start your training plan."),
				),
			},
			FormConfig: &models.FormConfig{
				Title:            "Start Your Journey",
				SubmitButtonText: "Apply Now",
				Fields: []models.FormField{
					{Name: "firstName", Label: "First Name", Type: models.FieldText, Required: true},
					{Name: "lastName", Label: "Last Name", Type: models.FieldText, Required: true},
					{Name: "email", Label: "Email", Type: models.FieldEmail, Required: true},
					{Name: "phone", Label: "Phone", Type: models.FieldTel, Required: true},
					{Name: "experience", Label: "Sales Experience", Type: models.FieldSelect, Options: options(
						"None", "Less than 2 years", "2 to 5 years", "More than 5 years",
					)},
					{Name: "message", Label: "Tell us about yourself", Type: models.FieldTextarea},
				},
			},
		},
	}
}

func clientTemplate() models.Template {
	return models.Template{
		ID:          models.TemplateClient,
		Name:        "Client",
		Description: "Win new clients with a services page and consultation form.",
		Color:       "bg-blue-500",
		DefaultContent: models.Content{
			Headline:    "Protect What Matters Most",
			Subheadline: "Personalized financial strategies for your family and your future.",
			Sections: map[string]any{
				"whatWeDo": section("What We Do",
					item("shield", "Life Insurance", "Coverage that keeps your family secure."),
					item("piggy-bank", "Retirement Planning", "Strategies that make your savings last."),
					item("home", "Mortgage Protection", "Keep your home if the unexpected happens."),
				),
				"howItWorks": section("How It Works",
					step("Free Consultation", "We listen to your goals and concerns."),
					step("Custom Plan", "We design a plan around your budget."),
					step("Ongoing Support", "We review your plan as your life changes."),
				),
				"whoWeServe": section("Who We Serve",
					item("users", "Young Families", "Start building protection early."),
					item("briefcase", "Business Owners", "Protect your business and your people."),
					item("heart", "Retirees", "Income you cannot outlive."),
				),
			},
			FormConfig: &models.FormConfig{
				Title:            "Book a Free Consultation",
				SubmitButtonText: "Request Consultation",
				InterestField: &models.InterestField{
					Label:   "I am interested in",
					Options: options("Life Insurance", "Retirement Planning", "Mortgage Protection", "College Savings"),
				},
				Fields: []models.FormField{
					{Name: "name", Label: "Full Name", Type: models.FieldText, Required: true},
					{Name: "email", Label: "Email", Type: models.FieldEmail, Required: true},
					{Name: "phone", Label: "Phone", Type: models.FieldTel, Required: true},
					{Name: "message", Label: "Anything we should know?", Type: models.FieldTextarea},
				},
			},
		},
	}
}

func hybridTemplate() models.Template {
	return models.Template{
		ID:          models.TemplateHybrid,
		Name:        "Hybrid",
		Description: "One page for both clients and future team members.",
		Color:       "bg-purple-500",
		DefaultContent: models.Content{
			Headline:    "Financial Freedom Starts Here",
			Subheadline: "Whether you need a plan or want a career, we can help.",
			Sections: map[string]any{
				"forClients": section("For Families",
					item("shield", "Protection", "Insurance that fits your budget."),
					item("trending-up", "Growth", "Savings strategies for every stage of life."),
				),
				"forRecruits": section("For Future Agents",
					item("briefcase", "Own Your Business", "Build an agency on your own terms."),
					item("graduation-cap", "Full Training", "We teach you everything you need."),
				),
				"whyChooseUs": section("Why Choose Us",
					item("star", "Trusted Advice", "We put your interests first."),
					item("handshake", "Long-Term Partnership", "We stay with you for the long run."),
					item("globe", "Nationwide", "Licensed across the country."),
				),
			},
			FormConfig: &models.FormConfig{
				Title:            "Let's Talk",
				SubmitButtonText: "Get Started",
				InterestField: &models.InterestField{
					Label: "I am looking for",
					Options: []models.FieldOption{
						{Value: "services", Label: "Financial services for my family"},
						{Value: "career", Label: "A career opportunity"},
						{Value: "both", Label: "Both"},
					},
				},
				Fields: []models.FormField{
					{Name: "name", Label: "Full Name", Type: models.FieldText, Required: true},
					{Name: "email", Label: "Email", Type: models.FieldEmail, Required: true},
					{Name: "phone", Label: "Phone", Type: models.FieldTel},
				},
			},
		},
	}
}

func latinoUSATemplate() models.Template {
	return models.Template{
		ID:          models.TemplateLatinoUSA,
		Name:        "Latino USA",
		Description: "A Spanish-language page for Latino families in the United States.",
		Color:       "bg-orange-500",
		DefaultContent: models.Content{
			Headline:    "Protegiendo el Futuro de Tu Familia",
			Subheadline: "Asesoría financiera en tu idioma, con valores que compartimos.",
			Sections: map[string]any{
				"familySupport": section("Apoyo Para Tu Familia",
					item("heart", "Familia Primero", "Planes pensados para toda la familia."),
					item("home", "Tu Hogar Seguro", "Protege la casa que tanto te costó."),
					item("graduation-cap", "Educación", "Ahorra para el futuro de tus hijos."),
				),
				"services": section("Nuestros Servicios",
					item("shield", "Seguro de Vida", "Tranquilidad para los que más quieres."),
					item("piggy-bank", "Retiro", "Prepárate para un retiro digno."),
					item("dollar-sign", "Crédito y Deudas", "Estrategias para salir adelante."),
				),
				"testimonials": map[string]any{
					"title": "Lo Que Dicen Nuestras Familias",
					"items": []any{
						map[string]any{"quote": "Nos explicaron todo en español y con paciencia.", "author": "María G.", "role": "Houston, TX"},
						map[string]any{"quote": "Ahora sé que mi familia está protegida.", "author": "José R.", "role": "Phoenix, AZ"},
					},
				},
			},
			FormConfig: &models.FormConfig{
				Title:            "Habla Con Nosotros",
				SubmitButtonText: "Enviar",
				Fields: []models.FormField{
					{Name: "nombre", Label: "Nombre Completo", Type: models.FieldText, Required: true},
					{Name: "telefono", Label: "Teléfono", Type: models.FieldTel, Required: true},
					{Name: "email", Label: "Correo Electrónico", Type: models.FieldEmail},
					{Name: "idioma", Label: "Idioma Preferido", Type: models.FieldSelect, Required: true, Options: options("Español", "English")},
					{Name: "mensaje", Label: "Mensaje", Type: models.FieldTextarea},
				},
			},
		},
	}
}

func internationalTemplate() models.Template {
	return models.Template{
		ID:          models.TemplateInternational,
		Name:        "International",
		Description: "Reach professionals abroad who want to build a US business.",
		Color:       "bg-teal-500",
		DefaultContent: models.Content{
			Headline:    "Build a US Business From Anywhere",
			Subheadline: "Partner with an established team and grow internationally.",
			Sections: map[string]any{
				"globalOpportunity": section("A Global Opportunity",
					item("globe", "Worldwide Reach", "Serve clients across borders."),
					item("plane", "Travel Incentives", "Earn trips to conventions and retreats."),
				),
				"requirements": map[string]any{
					"title": "Requirements",
					"items": []any{
						"Valid passport",
						"Conversational English",
						"Reliable internet connection",
					},
				},
				"support": section("How We Support You",
					step("Orientation", "A guided introduction to the business."),
					step("Licensing Help", "We walk you through every requirement."),
					step("Team Calls", "Weekly calls in your time zone."),
				),
			},
			FormConfig: &models.FormConfig{
				Title:            "Request Information",
				SubmitButtonText: "Send Request",
				Fields: []models.FormField{
					{Name: "name", Label: "Full Name", Type: models.FieldText, Required: true},
					{Name: "email", Label: "Email", Type: models.FieldEmail, Required: true},
					{Name: "whatsapp", Label: "WhatsApp", Type: models.FieldTel},
					{Name: "country", Label: "Country", Type: models.FieldSelect, Required: true, Options: []models.FieldOption{
						{Value: "MX", Label: "Mexico"},
						{Value: "CO", Label: "Colombia"},
						{Value: "PE", Label: "Peru"},
						{Value: "other", Label: "Other"},
					}},
				},
			},
		},
	}
}

func section(title string, items ...any) map[string]any {
	return map[string]any{"title": title, "items": items}
}

func item(icon, title, description string) map[string]any {
	return map[string]any{"icon": icon, "title": title, "description": description}
}

func step(title, description string) map[string]any {
	return map[string]any{"title": title, "description": description}
}

func options(values ...string) []models.FieldOption {
	out := make([]models.FieldOption, len(values))
	for i, v := range values {
		out[i] = models.FieldOption{Value: v, Label: v}
	}
	return out
}
