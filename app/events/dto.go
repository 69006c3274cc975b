package events

import "github.com/polyfeed/polyfeed/models"

// AddInjectedURLRequest is the request to register an extra feed URL
type AddInjectedURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// InjectedURLListResponse wraps the registered URL list
type InjectedURLListResponse struct {
	URLs []models.InjectedURL `json:"urls"`
}
