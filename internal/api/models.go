package api

// Capacity administration
type SetCapacityRequest struct {
	Capacity int `json:"capacity"`
}
type CapacityResponse struct {
	Capacity int `json:"capacity"`
}
