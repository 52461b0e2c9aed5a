package member

// Status values for the roster presence dot.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Member is one entry of the team roster. Records are immutable after
// load; a refresh replaces the whole roster.
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	Status string `json:"status"`
	Bio    string `json:"bio"`
}
