package plugin

// Built-in plugins ship with the binary and register themselves here.
// External plugins discovered from the plugin directory layer on top.
func init() {
	MustRegister(&Plugin{
		Name:        "grid",
		Version:     "1.0.0",
		Description: "Sample grid view",
	})
	MustRegister(&Plugin{
		Name:        "sample-viewer",
		Version:     "1.0.0",
		Description: "Single-sample modal viewer",
	})
	MustRegister(&Plugin{
		Name:        "view-bar",
		Version:     "1.0.0",
		Description: "View stage bar",
	})
}
