package controllers

// appendReq is the POST /events body. Any timestamp sent by the client is
// ignored; the server stamps events.
type appendReq struct {
	Source   string `json:"source" validate:"max=64"`
	Type     string `json:"type" validate:"max=64"`
	Instance string `json:"instance" validate:"max=128"`
}
