package contracts

type HostMessageType string

const (
	HostMessageUpdate   HostMessageType = "update"
	HostMessageFocus    HostMessageType = "focus"
	HostMessageResponse HostMessageType = "response"
)

type CellUpdate struct {
	Text           string `json:"text"`
	FormattedValue string `json:"formattedValue"`
}

type CellResponse struct {
	Text    string `json:"text"`
	Val     string `json:"val"`
	Formula string `json:"formula"`
}

type HostMessage struct {
	Type      HostMessageType         `json:"type"`
	Cells     map[string]CellUpdate   `json:"cells,omitempty"`
	Responses map[string]CellResponse `json:"responses,omitempty"`
	Name      string                  `json:"name,omitempty"`
	Value     string                  `json:"value,omitempty"`
}

type HostNotifier interface {
	Notify(message HostMessage)
}
