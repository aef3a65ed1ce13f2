package contracts

// FormSessions keeps one live propagation engine per form
type FormSessions interface {
	// SetCell types text into a cell and blurs it, so the change cascades before it returns
	SetCell(formId string, name string, text string) (*Cell, error)
	// Focus moves the cursor into a cell, blurring the previously focused one
	Focus(formId string, name string) (*Cell, error)
	Cells(formId string) (map[string]Cell, error)
	Score(formId string) (*ScoreSummary, error)
	// Forget drops the in-memory session; it is rebuilt from the repository on next use
	Forget(formId string)
}
