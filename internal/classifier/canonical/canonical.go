// Package canonical gathers the decoders of the supported model families.
package canonical

import (
	"github.com/ekisa-team/loanrisk/internal/classifier/gbdt"
	"github.com/ekisa-team/loanrisk/internal/classifier/lda"
	"github.com/ekisa-team/loanrisk/internal/classifier/logistic"
	"github.com/ekisa-team/loanrisk/internal/classifier/xgboost"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// Decoders returns a fresh decoder table for every supported family.
func Decoders() map[model.Family]model.Decoder {
	return map[model.Family]model.Decoder{
		model.FamilyLogisticRegression: logistic.Decode,
		model.FamilyXGBoost:            xgboost.Decode,
		model.FamilyLDA:                lda.Decode,
		model.FamilyGradientBoosting:   gbdt.Decode,
	}
}
