package board

// Input is the answer to one prompt: either the user cancelled it or they
// submitted a value, possibly empty.
type Input struct {
	value     string
	submitted bool
}

func Cancelled() Input {
	return Input{}
}

func Submitted(value string) Input {
	return Input{value: value, submitted: true}
}

func (i Input) Value() (string, bool) {
	return i.value, i.submitted
}

func (i Input) IsCancelled() bool {
	return !i.submitted
}
