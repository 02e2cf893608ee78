package compliance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// rulebook maps a jurisdiction code to its checkers, in evaluation order.
// Other jurisdictions have no rules yet.
var rulebook = map[string][]Checker{
	"IN": {
		{Category: CategoryGST, Check: checkGST},
		{Category: CategoryTDS, Check: checkTDS},
		{Category: CategoryCompaniesAct, Check: checkCompaniesAct},
		{Category: CategoryMSME, Check: checkMSME},
		{Category: CategoryDataProtection, Check: checkDataProtection},
	},
}

const (
	CategoryGST            = "GST"
	CategoryTDS            = "TDS"
	CategoryCompaniesAct   = "Companies Act"
	CategoryMSME           = "MSME Act"
	CategoryDataProtection = "Data Protection"
)

const (
	citationGST            = "GST Act, 2017"
	citationTDS            = "Income Tax Act, 1961"
	citationCompaniesAct   = "Companies Act, 2013"
	citationMSME           = "MSME Development Act, 2006"
	citationDataProtection = "IT Act 2000, DPDP Act"
)

// LargePaymentThreshold is one lakh rupees
const LargePaymentThreshold = 100000.0

var (
	gstRegistration    = regexp.MustCompile(`gstin|gst\s+registration|goods\s+and\s+services\s+tax`)
	gstInvoiceFields   = regexp.MustCompile(`invoice|tax\s+invoice|gstin|hsn|sac`)
	tdsMention         = regexp.MustCompile(`tds|tax\s+deducted\s+at\s+source|withholding`)
	tdsRate            = regexp.MustCompile(`\d+%\s+tds|tds\s+at\s+\d+%`)
	boardApproval      = regexp.MustCompile(`board\s+approval|board\s+resolution`)
	relatedParty       = regexp.MustCompile(`related\s+party|related\s+person`)
	msmePaymentRule    = regexp.MustCompile(`45\s+days|msme|micro.*small.*medium`)
	supplierRelation   = regexp.MustCompile(`supplier|vendor|service\s+provider`)
	dataProcessing     = regexp.MustCompile(`data\s+processing|personal\s+data|personal\s+information`)
	breachNotification = regexp.MustCompile(`data\s+breach|breach\s+notification|security\s+incident`)

	rupeeAmount = regexp.MustCompile(`₹\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)

	commercialKeywords = []string{"payment", "invoice", "purchase", "sale", "service", "supply"}
)

// RupeeAmounts parses ₹-prefixed amounts. Lakh-style grouping (1,00,000) is not understood.
func RupeeAmounts(lower string) []float64 {
	var amounts []float64
	for _, m := range rupeeAmount.FindAllStringSubmatch(lower, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v)
	}
	return amounts
}

// HasCommercialTransaction reports whether the text reads like a sale or service deal
func HasCommercialTransaction(lower string) bool {
	for _, kw := range commercialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasLargePayment(doc Document) bool {
	for _, a := range doc.Amounts {
		if a >= LargePaymentThreshold {
			return true
		}
	}
	return false
}

func warn(category, message, citation string) []model.ComplianceCheck {
	return []model.ComplianceCheck{{Category: category, Status: model.StatusWarn, Message: message, Citation: citation}}
}

func pass(category, message string) []model.ComplianceCheck {
	return []model.ComplianceCheck{{Category: category, Status: model.StatusPass, Message: message}}
}

func checkGST(doc Document) []model.ComplianceCheck {
	if !HasCommercialTransaction(doc.Lower) {
		return nil
	}

	switch {
	case !gstRegistration.MatchString(doc.Lower):
		return warn(CategoryGST, "GST registration and invoicing requirements not mentioned", citationGST)
	case !gstInvoiceFields.MatchString(doc.Lower):
		return warn(CategoryGST, "GST invoice fields (GSTIN, HSN/SAC) not clearly specified", citationGST)
	default:
		return pass(CategoryGST, "GST compliance elements mentioned")
	}
}

func checkTDS(doc Document) []model.ComplianceCheck {
	mentioned := tdsMention.MatchString(doc.Lower)

	switch {
	case hasLargePayment(doc) && !mentioned:
		return warn(CategoryTDS, "TDS withholding not mentioned for large payments", citationTDS)
	case mentioned && !tdsRate.MatchString(doc.Lower):
		return warn(CategoryTDS, "TDS mentioned but rates/thresholds not specified", citationTDS)
	case mentioned:
		return pass(CategoryTDS, "TDS compliance mentioned")
	}
	return nil
}

func checkCompaniesAct(doc Document) []model.ComplianceCheck {
	if relatedParty.MatchString(doc.Lower) && !boardApproval.MatchString(doc.Lower) {
		return warn(CategoryCompaniesAct, "Related party transaction mentioned but board approval not referenced", citationCompaniesAct)
	}
	return nil
}

func checkMSME(doc Document) []model.ComplianceCheck {
	hasRule := msmePaymentRule.MatchString(doc.Lower)

	switch {
	case supplierRelation.MatchString(doc.Lower) && !hasRule:
		return warn(CategoryMSME, "Supplier relationship mentioned but 45-day payment rule not specified", citationMSME)
	case hasRule:
		return pass(CategoryMSME, "MSME payment timelines mentioned")
	}
	return nil
}

func checkDataProtection(doc Document) []model.ComplianceCheck {
	if !dataProcessing.MatchString(doc.Lower) {
		return nil
	}
	if !breachNotification.MatchString(doc.Lower) {
		return warn(CategoryDataProtection, "Data processing mentioned but breach notification procedures not specified", citationDataProtection)
	}
	return pass(CategoryDataProtection, "Data protection measures mentioned")
}
