// Package engagement provides domain entities for the proactive engagement
// engine: the message catalog and the per-message lifecycle state machine.
package engagement

// ActionKind enumerates what a message button does when clicked.
type ActionKind string

const (
	ActionNavigate ActionKind = "navigate" // smooth-scroll to a page section
	ActionContact  ActionKind = "contact"  // open the messaging channel
	ActionDownload ActionKind = "download" // open a resource, or defer if unconfigured
	ActionDismiss  ActionKind = "dismiss"  // close with the decline cooldown
)

// ActionButton is one rendered button on a proactive message.
type ActionButton struct {
	Label   string     `json:"label"`
	Action  ActionKind `json:"action"`
	Target  string     `json:"target,omitempty"`
	Primary bool       `json:"primary,omitempty"`
}

// MessageDefinition is a static catalog entry keyed by message key.
type MessageDefinition struct {
	Key     string         `json:"key"`
	Text    string         `json:"text"`
	Buttons []ActionButton `json:"buttons"`
}

// Message keys for the timed triggers and side surfaces.
const (
	KeyWelcome     = "welcome"
	KeyInactive    = "inactive"
	KeyExitIntent  = "exitIntent"
	KeyPdfDelivery = "pdfDelivery"

	userHelpPrefix = "userHelp_"
)

// PlaceholderTargetPrefix marks a download target that has no concrete URL
// configured yet; the client surfaces a deferred-delivery notice instead.
const PlaceholderTargetPrefix = "#PDF_PLACEHOLDER"

// HelpKey returns the user-initiated help message key for a section.
func HelpKey(section string) string {
	return userHelpPrefix + section
}

// Catalog holds the static message definitions.
type Catalog map[string]MessageDefinition

// Get looks up a message definition by key.
func (c Catalog) Get(key string) (MessageDefinition, bool) {
	def, ok := c[key]
	return def, ok
}

// DefaultCatalog builds the GoIconicWay message catalog. Section-arrival
// messages are keyed by their section identifier.
func DefaultCatalog() Catalog {
	defs := []MessageDefinition{
		{
			Key:  KeyWelcome,
			Text: "Hi there! 👋 I'm Klausy, your AI travel advisor. Dreaming of a Tesla road trip through the USA?",
			Buttons: []ActionButton{
				{Label: "Yes, tell me more!", Action: ActionNavigate, Target: "#fleet", Primary: true},
				{Label: "Maybe later", Action: ActionDismiss},
			},
		},
		{
			Key:  "fleet",
			Text: "Great choice! 🚗 The Model Y Camping Package is our bestseller - perfect for couples. The Cybertruck is ideal for off-road adventures!",
			Buttons: []ActionButton{
				{Label: "View Routes", Action: ActionNavigate, Target: "#routes", Primary: true},
				{Label: "WhatsApp Chat", Action: ActionContact},
			},
		},
		{
			Key:  "routes",
			Text: "Route 66 is legendary! 🛣️ 14 days from Chicago to L.A. - an unforgettable experience. Or prefer the National Parks?",
			Buttons: []ActionButton{
				{Label: "Try AI Route Planner", Action: ActionNavigate, Target: "#concierge", Primary: true},
				{Label: "Check Prices", Action: ActionNavigate, Target: "#booking-bar"},
			},
		},
		{
			Key:  "concierge",
			Text: "Try our AI Route Planner! 🤖 It creates a personalized route based on your interests.",
			Buttons: []ActionButton{
				{Label: "Book Now", Action: ActionNavigate, Target: "#booking-bar", Primary: true},
				{Label: "Questions? WhatsApp", Action: ActionContact},
			},
		},
		{
			Key:  KeyInactive,
			Text: "Still there? 😊 Can I help you with planning? Our team is also available via WhatsApp!",
			Buttons: []ActionButton{
				{Label: "Get Help", Action: ActionContact, Primary: true},
				{Label: "Just browsing", Action: ActionDismiss},
			},
		},
		{
			Key:  KeyExitIntent,
			Text: "Wait! 🎁 Get our FREE Roadtrip Guide with packing list and insider tips before you go!",
			Buttons: []ActionButton{
				{Label: "Get Free Guide", Action: ActionNavigate, Target: "#heroLeadCapture", Primary: true},
				{Label: "No thanks", Action: ActionDismiss},
			},
		},
		{
			Key:  HelpKey("home"),
			Text: "Hey! 👋 I'm Klausy, your friendly AI Concierge. How can I help?",
			Buttons: []ActionButton{
				{Label: "Show Vehicles", Action: ActionNavigate, Target: "#fleet", Primary: true},
				{Label: "Plan more with Klausy", Action: ActionNavigate, Target: "#concierge"},
			},
		},
		{
			Key:  HelpKey("fleet"),
			Text: "Checking out the available vehicles! 🚗 Need help choosing?",
			Buttons: []ActionButton{
				{Label: "Ask Klausy", Action: ActionNavigate, Target: "#concierge", Primary: true},
				{Label: "WhatsApp Chat", Action: ActionContact},
			},
		},
		{
			Key:  HelpKey("routes"),
			Text: "The routes are fantastic! 🛣️ Want me to tell you more?",
			Buttons: []ActionButton{
				{Label: "Plan with Klausy", Action: ActionNavigate, Target: "#concierge", Primary: true},
				{Label: "Check Prices", Action: ActionNavigate, Target: "#booking-bar"},
			},
		},
		{
			Key:  HelpKey("concierge"),
			Text: "Welcome to my section! 🤖 Try my route planner above!",
			Buttons: []ActionButton{
				{Label: "Book Now", Action: ActionNavigate, Target: "#booking-bar", Primary: true},
				{Label: "WhatsApp for Questions", Action: ActionContact},
			},
		},
		{
			Key:  HelpKey("testimonials"),
			Text: "Our guests love their adventures! ⭐ Have questions?",
			Buttons: []ActionButton{
				{Label: "Plan with Klausy", Action: ActionNavigate, Target: "#concierge", Primary: true},
				{Label: "Get in Touch", Action: ActionContact},
			},
		},
		{
			Key:  HelpKey("contact"),
			Text: "Ready to book? 🎉 For questions, we're available via WhatsApp!",
			Buttons: []ActionButton{
				{Label: "WhatsApp Chat", Action: ActionContact, Primary: true},
				{Label: "View Routes Again", Action: ActionNavigate, Target: "#routes"},
			},
		},
		{
			Key:  KeyPdfDelivery,
			Text: "🎉 Your roadtrip guide is ready! Click below to download.",
			Buttons: []ActionButton{
				{Label: "📥 Download Guide", Action: ActionDownload, Target: PlaceholderTargetPrefix + "_EN", Primary: true},
				{Label: "Plan with Klausy", Action: ActionNavigate, Target: "#concierge"},
			},
		},
	}

	catalog := make(Catalog, len(defs))
	for _, def := range defs {
		catalog[def.Key] = def
	}
	return catalog
}
