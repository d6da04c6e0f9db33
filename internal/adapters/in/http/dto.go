package http

import (
	"time"

	"routehub/internal/core/application/usecases/queries"
	"routehub/internal/core/domain/model/route"
)

type newRouteRequest struct {
	PackageInfo string `json:"packageInfo"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type routeChangesRequest struct {
	Origin      *string `json:"origin"`
	Destination *string `json:"destination"`
}

type pushAddressRequest struct {
	Address string `json:"address"`
}

type routeResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	AgentID     string    `json:"agentId,omitempty"`
	PackageInfo string    `json:"packageInfo"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type routeSummaryResponse struct {
	routeResponse
	CustomerName string `json:"customerName"`
	AgentName    string `json:"agentName,omitempty"`
}

func fromRoute(r *route.Route) routeResponse {
	resp := routeResponse{
		ID:          r.ID().String(),
		CustomerID:  r.CustomerID().String(),
		PackageInfo: r.PackageInfo(),
		Origin:      r.Origin(),
		Destination: r.Destination(),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
	if agentID := r.AgentID(); agentID != nil {
		resp.AgentID = agentID.String()
	}
	return resp
}

func fromSummary(s queries.RouteSummary) routeSummaryResponse {
	resp := routeSummaryResponse{
		routeResponse: routeResponse{
			ID:          s.ID.String(),
			CustomerID:  s.CustomerID.String(),
			PackageInfo: s.PackageInfo,
			Origin:      s.Origin,
			Destination: s.Destination,
			Status:      s.Status.String(),
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		},
		CustomerName: s.CustomerName,
		AgentName:    s.AgentName,
	}
	if s.AgentID != nil {
		resp.AgentID = s.AgentID.String()
	}
	return resp
}

func fromSummaries(summaries []queries.RouteSummary) []routeSummaryResponse {
	resp := make([]routeSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = fromSummary(s)
	}
	return resp
}

type sendCodeRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type codeIssuedResponse struct {
	Outcome   string     `json:"outcome"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type validateCodeRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	Code    string `json:"code"`
}

type codeAcceptedResponse struct {
	Purpose             string     `json:"purpose"`
	ResetToken          string     `json:"resetToken,omitempty"`
	ResetTokenExpiresAt *time.Time `json:"resetTokenExpiresAt,omitempty"`
}

type resetTokenRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type resetTokenCheckResponse struct {
	Valid bool `json:"valid"`
}
