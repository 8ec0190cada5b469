package services

// ValidityOptions is the list of quotation validity periods.
var ValidityOptions = []string{
	"7 days",
	"15 days",
	"30 days",
}

// PaymentScheduleOptions is the list of advance payment percentages.
var PaymentScheduleOptions = []string{
	"25%",
	"50%",
	"75%",
	"100%",
}

// DisplayModeOptions is the list of summary display modes: bifurcated
// shows per-service pricing rows, lumpsum collapses a package to one
// total row.
var DisplayModeOptions = []string{
	"bifurcated",
	"lumpsum",
}
