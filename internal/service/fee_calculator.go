package service

import "github.com/mindbridge-edu/mindbridge-core/internal/models"

// Fee schedule in whole dollars.
const (
	specialEducationFee = 100
	coreProgramFee      = 150
	singleExtraFee      = 150
	oneExtraSurcharge   = 50
	twoExtraSurcharge   = 85
)

// CalculateFee maps a program selection to its total fee and itemised
// breakdown. It is pure and deterministic and is the single source of truth
// for pricing: enrollment and invoice totals are always derived by calling
// it, never duplicated inline.
//
// The calculator does not validate the selection. Callers reject a core-plus
// selection with zero extra courses, and more than two extras never reaches
// this function (see EnrollmentService.Enroll).
func CalculateFee(sel models.ProgramSelection) models.FeeQuote {
	switch sel.Type {
	case models.ProgramSpecialOnly:
		return models.FeeQuote{
			Total:     specialEducationFee,
			Breakdown: []models.FeeLine{{Item: "Special Education", Amount: specialEducationFee}},
		}
	case models.ProgramCoreOnly:
		return models.FeeQuote{
			Total:     coreProgramFee,
			Breakdown: []models.FeeLine{{Item: "High School Core", Amount: coreProgramFee}},
		}
	case models.ProgramSingleExtra:
		return models.FeeQuote{
			Total:     singleExtraFee,
			Breakdown: []models.FeeLine{{Item: "Single Extra Course", Amount: singleExtraFee}},
		}
	case models.ProgramCorePlus:
		quote := models.FeeQuote{
			Total:     coreProgramFee,
			Breakdown: []models.FeeLine{{Item: "High School Core", Amount: coreProgramFee}},
		}
		switch len(sel.ExtraCourses) {
		case 1:
			quote.Total = coreProgramFee + oneExtraSurcharge
			quote.Breakdown = append(quote.Breakdown, models.FeeLine{Item: "1 Extra Course", Amount: oneExtraSurcharge})
		case 2:
			quote.Total = coreProgramFee + twoExtraSurcharge
			quote.Breakdown = append(quote.Breakdown, models.FeeLine{Item: "2 Extra Courses", Amount: twoExtraSurcharge})
		}
		return quote
	default:
		return models.FeeQuote{}
	}
}
