package response

import (
	"homecare-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   *string            `json:"description,omitempty"`
	UnitType      entity.PricingUnit `json:"unit_type"`
	UnitPrice     float64            `json:"unit_price"`
	MinQuantity   float64            `json:"min_quantity"`
	RequiresNotes bool               `json:"requires_notes"`
	NotePrompt    *string            `json:"note_prompt,omitempty"`
}

func ServiceToResponse(svc *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:            svc.ID.String(),
		Name:          svc.Name,
		Description:   svc.Description,
		UnitType:      svc.UnitType,
		UnitPrice:     svc.UnitPrice,
		MinQuantity:   svc.MinQuantity,
		RequiresNotes: svc.RequiresNotes,
		NotePrompt:    svc.NotePrompt,
	}
}
