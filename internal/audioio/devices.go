package audioio

// ListOutputs enumerates available audio output devices. oto drives
// whatever the OS reports as its default output device and exposes no
// device-selection API, so "default" is the only entry; audioout in
// the configuration file selects no device and is only shown in the
// status display.
func ListOutputs() []string {
	return []string{"default"}
}
