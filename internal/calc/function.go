package calc

// Function names a calculation reachable through dispatch
type Function string

const (
	FuncPitchFromRiseRun Function = "pitchFromRiseRun"
	FuncRiseFromPitchRun Function = "riseFromPitchRun"
	FuncRunFromPitchRise Function = "runFromPitchRise"
	FuncDiagonal         Function = "diagonal"
	FuncConvert          Function = "convert"
	FuncStairs           Function = "stairs"

	// Documented but not built yet
	FuncHipRafterLength    Function = "hipRafterLength"
	FuncCommonRafterLength Function = "commonRafterLength"
	FuncValleyRafterLength Function = "valleyRafterLength"
	FuncBoardFeet          Function = "boardFeet"
	FuncConcreteVolume     Function = "concreteVolume"
)

// FunctionInfo describes a function for discovery endpoints
type FunctionInfo struct {
	Name        Function `json:"name"`
	Description string   `json:"description"`
	Implemented bool     `json:"implemented"`
	Required    []string `json:"required,omitempty"`
	Optional    []string `json:"optional,omitempty"`
}

var catalog = []FunctionInfo{
	{
		Name:        FuncPitchFromRiseRun,
		Description: "Roof pitch (X per 12) and angle from a rise and a run",
		Implemented: true,
		Required:    []string{"rise", "run"},
	},
	{
		Name:        FuncRiseFromPitchRun,
		Description: "Rise produced by a pitch over a run",
		Implemented: true,
		Required:    []string{"pitch", "run"},
	},
	{
		Name:        FuncRunFromPitchRise,
		Description: "Run needed to reach a rise at a pitch",
		Implemented: true,
		Required:    []string{"pitch", "rise"},
	},
	{
		Name:        FuncDiagonal,
		Description: "Hypotenuse of a right triangle from rise and run",
		Implemented: true,
		Required:    []string{"rise", "run"},
	},
	{
		Name:        FuncConvert,
		Description: "Convert a value from inUnit to outUnit",
		Implemented: true,
		Required:    []string{"value"},
	},
	{
		Name:        FuncStairs,
		Description: "Riser count, riser height and run for a straight stair",
		Implemented: true,
		Required:    []string{"totalRise"},
		Optional:    []string{"desiredRisePerStep", "desiredTread"},
	},
	{Name: FuncHipRafterLength, Description: "Hip rafter length"},
	{Name: FuncCommonRafterLength, Description: "Common rafter length"},
	{Name: FuncValleyRafterLength, Description: "Valley rafter length"},
	{Name: FuncBoardFeet, Description: "Board feet of lumber"},
	{Name: FuncConcreteVolume, Description: "Concrete volume for a slab or footing"},
}

// Catalog returns every documented function, implemented or not
func Catalog() []FunctionInfo {
	out := make([]FunctionInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for f
func Lookup(f Function) (FunctionInfo, bool) {
	for _, info := range catalog {
		if info.Name == f {
			return info, true
		}
	}
	return FunctionInfo{}, false
}
