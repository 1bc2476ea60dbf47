package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
// Future: could be loaded from configuration or generated dynamically.
var DefaultAssumptions = []string{
	"Year one spending is uninflated; inflation compounds from the second retirement year",
	"Phase percentages apply to the target spend before inflation adjustment",
	"Survivor reduction is permanent from the event year through the end of the horizon",
	"Amounts are nominal (future) dollars, rounded to cents per year",
	"Monthly figures divide the annual amount evenly across twelve months",
}
