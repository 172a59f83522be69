package model

// FieldType constrains the values a singleton field accepts.
type FieldType int

const (
	FieldString FieldType = iota
	FieldBool
	// FieldAsset holds an asset reference URL.
	FieldAsset
)

// KindSpec describes one singleton kind.
type KindSpec struct {
	Kind     string
	Fields   map[string]FieldType
	Defaults map[string]any
	// Private fields are only served by the admin API.
	Private map[string]bool
}

// Singleton kinds served by the content API.
const (
	KindConfig        = "config"
	KindPrivacyPolicy = "privacy_policy"
	KindCareersPage   = "careers_page"
	KindHero          = "hero"
	KindNewsletter    = "newsletter"
)

// SingletonKinds is the registry of known kinds.
var SingletonKinds = map[string]KindSpec{
	KindConfig: {
		Kind: KindConfig,
		Fields: map[string]FieldType{
			"company_name":       FieldString,
			"tagline":            FieldString,
			"email":              FieldString,
			"phone":              FieldString,
			"address":            FieldString,
			"notification_email": FieldString,
			"facebook_url":       FieldString,
			"instagram_url":      FieldString,
			"linkedin_url":       FieldString,
			"twitter_url":        FieldString,
			"logo_url":           FieldAsset,
			"favicon_url":        FieldAsset,
		},
		Defaults: map[string]any{
			"company_name": "My Company",
		},
		Private: map[string]bool{
			"notification_email": true,
		},
	},
	KindPrivacyPolicy: {
		Kind: KindPrivacyPolicy,
		Fields: map[string]FieldType{
			"title":        FieldString,
			"content":      FieldString,
			"last_updated": FieldString,
		},
		Defaults: map[string]any{
			"title":   "Privacy Policy",
			"content": "",
		},
	},
	KindCareersPage: {
		Kind: KindCareersPage,
		Fields: map[string]FieldType{
			"title":     FieldString,
			"intro":     FieldString,
			"content":   FieldString,
			"is_hiring": FieldBool,
			"image_url": FieldAsset,
		},
		Defaults: map[string]any{
			"title":     "Careers",
			"is_hiring": true,
		},
	},
	KindHero: {
		Kind: KindHero,
		Fields: map[string]FieldType{
			"title":            FieldString,
			"subtitle":         FieldString,
			"cta_text":         FieldString,
			"cta_link":         FieldString,
			"is_visible":       FieldBool,
			"background_image": FieldAsset,
		},
		Defaults: map[string]any{
			"title":      "Welcome",
			"is_visible": true,
		},
	},
	KindNewsletter: {
		Kind: KindNewsletter,
		Fields: map[string]FieldType{
			"title":       FieldString,
			"description": FieldString,
			"button_text": FieldString,
			"is_enabled":  FieldBool,
			"image_url":   FieldAsset,
		},
		Defaults: map[string]any{
			"title":       "Stay in touch",
			"button_text": "Subscribe",
			"is_enabled":  false,
		},
	},
}

// LookupKind returns the KindSpec registered for kind.
func LookupKind(kind string) (KindSpec, bool) {
	spec, ok := SingletonKinds[kind]
	return spec, ok
}
