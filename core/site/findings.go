package site

import "website-audit/core/types"

// Key findings shown when the audit leaves a field empty
var defaultFindings = types.KeyFindings{
	ExecutiveSummary: "This section summarizes the key findings from the comprehensive website audit.",
	Strengths: []string{
		"Strong content organization",
		"Clear navigation structure",
		"Good performance baseline",
	},
	Opportunities: []string{
		"Improve accessibility compliance",
		"Optimize asset loading",
		"Enhance mobile experience",
	},
	Challenges: []string{
		"Complex migration requirements",
		"Legacy code cleanup needed",
		"Performance optimization required",
	},
	ProjectSize:         "Medium",
	BaselinePercentage:  "~60-80%",
	Complexity:          "Medium",
	ComplexityRationale: "The project requires standard Drupal architecture patterns with moderate custom development.",
	MigrationPriority:   "Structured export approach with automated cleanup",
	PerformanceTarget:   "Achieve Core Web Vitals: LCP < 2.5s, FID < 100ms, CLS < 0.1",
	AccessibilityTarget: "Full WCAG 2.1 Level AA compliance required",
	TimelineNote:        "Realistic timeline with appropriate buffers for risk mitigation",
	ImmediateActions: []string{
		"Finalize content type specifications",
		"Set up development environment",
		"Begin migration planning",
	},
	StrategicDecisions: []string{
		"Choose paragraph architecture pattern",
		"Select theme framework (Tailwind + SDC recommended)",
		"Define testing strategy",
	},
}

// resolveFindings fills every empty field of f from defaultFindings
func resolveFindings(f types.KeyFindings) types.KeyFindings {
	d := defaultFindings
	str := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	list := func(v *[]string, def []string) {
		if len(*v) == 0 {
			*v = append([]string(nil), def...)
		}
	}

	str(&f.ExecutiveSummary, d.ExecutiveSummary)
	list(&f.Strengths, d.Strengths)
	list(&f.Opportunities, d.Opportunities)
	list(&f.Challenges, d.Challenges)
	str(&f.ProjectSize, d.ProjectSize)
	str(&f.BaselinePercentage, d.BaselinePercentage)
	str(&f.Complexity, d.Complexity)
	str(&f.ComplexityRationale, d.ComplexityRationale)
	str(&f.MigrationPriority, d.MigrationPriority)
	str(&f.PerformanceTarget, d.PerformanceTarget)
	str(&f.AccessibilityTarget, d.AccessibilityTarget)
	str(&f.TimelineNote, d.TimelineNote)
	list(&f.ImmediateActions, d.ImmediateActions)
	list(&f.StrategicDecisions, d.StrategicDecisions)
	return f
}

type navLink struct {
	Text string
	Link string
}

type navGroup struct {
	Text  string
	Items []navLink
}

var topNav = []navLink{
	{"Home", "/"},
	{"Architecture", "/content-architecture/"},
	{"Estimation", "/estimation/"},
}

var sidebar = []navGroup{
	{"Executive Summary", []navLink{
		{"Overview", "/index"},
		{"Key Findings", "/key-findings"},
		{"Recommendations", "/recommendations"},
	}},
	{"Current Site Analysis", []navLink{
		{"Technology Stack", "/current-site/technology"},
		{"Content Volume", "/current-site/volume"},
		{"Site Structure", "/current-site/structure"},
	}},
	{"Content Architecture", []navLink{
		{"Overview", "/content-architecture/"},
		{"Page Types", "/content-architecture/page-types"},
		{"Components", "/content-architecture/components"},
		{"Taxonomies", "/content-architecture/taxonomies"},
		{"Media", "/content-architecture/media"},
	}},
	{"Features & Functionality", []navLink{
		{"Overview", "/features/"},
		{"Interactive Features", "/features/interactive"},
		{"Navigation", "/features/navigation"},
		{"Views & Listings", "/features/listings"},
	}},
	{"Performance Analysis", []navLink{
		{"Overview", "/performance/"},
		{"Core Web Vitals", "/performance/core-web-vitals"},
		{"Asset Optimization", "/performance/assets"},
		{"Recommendations", "/performance/recommendations"},
	}},
	{"Accessibility Audit", []navLink{
		{"Overview", "/accessibility/"},
		{"WCAG 2.1 Audit", "/accessibility/wcag-audit"},
		{"Issues Found", "/accessibility/issues"},
		{"Remediation Plan", "/accessibility/remediation"},
	}},
	{"Integrations", []navLink{
		{"Overview & Landscape", "/integrations/"},
		{"SSO & Authentication", "/integrations/sso"},
		{"APIs & External Systems", "/integrations/apis"},
		{"CDN & Performance", "/integrations/cdn"},
		{"Search & Analytics", "/integrations/search"},
	}},
	{"Migration Plan", []navLink{
		{"Overview", "/migration/"},
		{"Approach", "/migration/approach"},
		{"Content Cleanup", "/migration/cleanup"},
		{"Complexity", "/migration/complexity"},
	}},
	{"Drupal Architecture", []navLink{
		{"Overview", "/drupal/"},
		{"Content Types", "/drupal/content-types"},
		{"Paragraph Types", "/drupal/paragraphs"},
		{"Views", "/drupal/views"},
		{"Modules", "/drupal/modules"},
	}},
	{"Estimation", []navLink{
		{"Overview", "/estimation/"},
		{"Detailed Breakdown", "/estimation/breakdown"},
		{"Baseline Comparison", "/estimation/comparison"},
		{"Timeline", "/estimation/timeline"},
		{"Risk Assessment", "/estimation/risks"},
	}},
	{"Appendices", []navLink{
		{"Screenshots", "/appendices/screenshots"},
		{"Data Tables", "/appendices/data-tables"},
		{"Assumptions", "/appendices/assumptions"},
	}},
}
