package dto

// Record positions are 1-based and match the numbered list shown to the
// user; requests referencing records use the same numbering.

type RecordResponse struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Selected bool   `json:"selected"`
}

type SessionStateResponse struct {
	SessionID       string           `json:"session_id"`
	SheetKey        string           `json:"sheet_key,omitempty"`
	StartingAddress string           `json:"starting_address,omitempty"`
	Records         []RecordResponse `json:"records"`
	CanOptimize     bool             `json:"can_optimize"`
}

type LoadSheetRequest struct {
	SheetKey string `json:"sheet_key"`
}

type SetStartRequest struct {
	StartingAddress string `json:"starting_address"`
}

type SetSelectionRequest struct {
	Positions []int `json:"positions"`
}
