package channel

// DefaultIcon is used for channels whose fixture omits an icon tag.
const DefaultIcon = "Hash"

// BotAvatar is the avatar shown for every bot-authored message.
const BotAvatar = "/beyond_imagination.png"

// Message is a single chat message, either part of a channel's fixed
// history or appended to a session buffer during the current visit.
type Message struct {
	ID        string   `json:"id"`
	AuthorID  string   `json:"authorId,omitempty"`
	Author    string   `json:"author,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Content   string   `json:"content"`
	Image     string   `json:"image,omitempty"`
	Images    []string `json:"images,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	IsBot     bool     `json:"isBot,omitempty"`
	IsVisitor bool     `json:"isVisitor,omitempty"`
}

// QuestionPreset is a canned question/answer pair selectable in lieu of
// free-text chat.
type QuestionPreset struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Image    string   `json:"image,omitempty"`
	Images   []string `json:"images,omitempty"`
}

// Record is the full channel fixture: fixed history plus either a preset
// menu or a contact form. A contact-form channel ignores presets.
type Record struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Order         int              `json:"order,omitempty"`
	Icon          string           `json:"icon,omitempty"`
	LeaderID      string           `json:"leaderId,omitempty"`
	LeaderTitle   string           `json:"leaderTitle,omitempty"`
	History       []Message        `json:"history"`
	Presets       []QuestionPreset `json:"presets,omitempty"`
	IsContactForm bool             `json:"isContactForm,omitempty"`
}

// Summary is the read-only projection used for the channel sidebar.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Icon  string `json:"icon"`
}

// Summarize projects the record into its navigation listing form,
// applying the icon default.
func (r *Record) Summarize() Summary {
	icon := r.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	return Summary{ID: r.ID, Name: r.Name, Order: r.Order, Icon: icon}
}

// Preset looks up a preset by identifier.
func (r *Record) Preset(id string) (QuestionPreset, bool) {
	for _, p := range r.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return QuestionPreset{}, false
}
