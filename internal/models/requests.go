package models

// RenameRequest sets or clears the display name of a number.
// Number is taken from the route when the request arrives over HTTP.
type RenameRequest struct {
	Number string `json:"number" validate:"phonenumber"`
	Name   string `json:"name" validate:"nocontrol"`
}

// ClassifyRequest moves a number to a target status.
type ClassifyRequest struct {
	Number string `json:"number" validate:"phonenumber"`
	Status string `json:"status" validate:"status"`
}

// ClassifyResponse reports the status a number ended up in.
type ClassifyResponse struct {
	Status Status `json:"status"`
}

// RenameResponse is returned whether or not the name changed.
type RenameResponse struct {
	Status string `json:"status"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
