package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/loanrisk/internal/model"
	"github.com/ekisa-team/loanrisk/internal/service"
)

type (
	FeaturesDTO struct {
		CreditScore      float64 `json:"CreditScore"      doc:"Borrower credit score"`
		OCLTV            float64 `json:"OCLTV"            doc:"Original combined loan-to-value ratio"`
		DTI              float64 `json:"DTI"              doc:"Debt-to-income ratio"`
		OrigUPB          float64 `json:"OrigUPB"          doc:"Original unpaid principal balance"`
		OrigInterestRate float64 `json:"OrigInterestRate" doc:"Original interest rate"`
	}

	PredictRequestDTO struct {
		Model    string      `json:"model"    minLength:"1" example:"logistic_regression" doc:"Model key"`
		Features FeaturesDTO `json:"features"`
	}

	PredictResponseDTO struct {
		Model      string `json:"model"`
		Prediction int    `json:"prediction"`
	}

	ModelsResponseDTO struct {
		Models []service.ModelStatus `json:"models"`
	}
)

type (
	PredictInput struct {
		Body PredictRequestDTO
	}

	PredictOutput struct {
		Body PredictResponseDTO
	}

	ModelsOutput struct {
		Body ModelsResponseDTO
	}
)

// Vector returns the features in model column order.
func (f FeaturesDTO) Vector() []float64 {
	return []float64{f.CreditScore, f.OCLTV, f.DTI, f.OrigUPB, f.OrigInterestRate}
}

// PredictionHandler handles the JSON prediction API.
type PredictionHandler struct {
	service *service.Prediction
}

// NewPredictionHandler creates a new PredictionHandler instance.
func NewPredictionHandler(api huma.API, service *service.Prediction) *PredictionHandler {
	h := &PredictionHandler{service: service}

	huma.Register(api, huma.Operation{
		OperationID:   "predict",
		Method:        http.MethodPost,
		Path:          "/api/predict",
		Summary:       "Classify a loan with the named model",
		Tags:          []string{"predict"},
		DefaultStatus: http.StatusOK,
	}, h.handlePredict)

	huma.Register(api, huma.Operation{
		OperationID: "list-models",
		Method:      http.MethodGet,
		Path:        "/api/models",
		Summary:     "List configured models and their availability",
		Tags:        []string{"models"},
	}, h.handleModels)

	return h
}

// handlePredict handles the predict operation.
func (h *PredictionHandler) handlePredict(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	out := h.service.Predict(input.Body.Model, input.Body.Features.Vector())

	label, ok := out.Label()
	if !ok {
		if errors.Is(out.Err(), model.ErrNotFound) {
			return nil, huma.Error404NotFound(out.Message())
		}
		return nil, huma.Error422UnprocessableEntity(out.Message())
	}

	return &PredictOutput{
		Body: PredictResponseDTO{
			Model:      input.Body.Model,
			Prediction: label,
		},
	}, nil
}

// handleModels handles the list-models operation.
func (h *PredictionHandler) handleModels(ctx context.Context, _ *struct{}) (*ModelsOutput, error) {
	return &ModelsOutput{
		Body: ModelsResponseDTO{Models: h.service.Models()},
	}, nil
}
