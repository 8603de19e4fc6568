package jsx

// Action and key ids of the host's place action.
const (
	EventPlace = "Plc "
	KeyTarget  = "null"
	KeyLinked  = "Lnkd"
)

// Place builds the non-interactive place-file action for path. When linked
// is set the file is placed as a linked smart object.
func Place(path string, linked bool) Command {
	params := []Param{PathParam(KeyTarget, path)}
	if linked {
		params = append(params, BoolParam(KeyLinked, true))
	}
	return Command{
		Event:      EventPlace,
		Params:     params,
		DialogMode: DialogNo,
	}
}

// PlaceScript renders Place(path, linked).
func PlaceScript(path string, linked bool) (string, error) {
	return Place(path, linked).Script()
}
