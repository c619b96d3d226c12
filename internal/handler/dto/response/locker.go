package response

import "lockstream/internal/usecase/queries"

type LockerSummaryResponse struct {
	LockerID             string   `json:"lockerId"`
	Status               string   `json:"status"`
	CompartmentIDs       []string `json:"compartmentIds"`
	Compartments         int      `json:"compartments"`
	ActiveReservations   int      `json:"activeReservations"`
	DegradedCompartments int      `json:"degradedCompartments"`
	StateHash            string   `json:"stateHash"`
}

type CompartmentStatusResponse struct {
	CompartmentID        string   `json:"compartmentId"`
	LockerID             string   `json:"lockerId"`
	OperationalState     string   `json:"operationalState"`
	ActiveFaultIDs       []string `json:"activeFaultIds"`
	CurrentReservationID *string  `json:"currentReservationId,omitempty"`
}

func FromLockerSummaryView(v *queries.LockerSummaryView) *LockerSummaryResponse {
	return &LockerSummaryResponse{
		LockerID:             v.LockerID,
		Status:               v.Status,
		CompartmentIDs:       v.CompartmentIDs,
		Compartments:         v.Compartments,
		ActiveReservations:   v.ActiveReservations,
		DegradedCompartments: v.DegradedCompartments,
		StateHash:            v.StateHash,
	}
}

func FromCompartmentStatusView(v *queries.CompartmentStatusView) *CompartmentStatusResponse {
	return &CompartmentStatusResponse{
		CompartmentID:        v.CompartmentID,
		LockerID:             v.LockerID,
		OperationalState:     v.OperationalState,
		ActiveFaultIDs:       v.ActiveFaultIDs,
		CurrentReservationID: v.CurrentReservationID,
	}
}
