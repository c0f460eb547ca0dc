package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LensError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LensError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// DatasetNotFound creates a dataset not found error
func DatasetNotFound(name string) *LensError {
	return New(ErrCodeDatasetNotFound, fmt.Sprintf("dataset '%s' not found", name)).
		WithDetail("dataset", name)
}

// PluginLoad creates a plugin load failure error
func PluginLoad(name string, err error) *LensError {
	return Wrap(err, ErrCodePluginLoad, fmt.Sprintf("failed to load plugin '%s'", name)).
		WithDetail("plugin", name)
}

// PluginDuplicate creates a duplicate plugin registration error
func PluginDuplicate(name string) *LensError {
	return New(ErrCodePluginDuplicate, fmt.Sprintf("plugin '%s' is already registered", name)).
		WithDetail("plugin", name)
}

// SubscribeFailed creates an event subscription failure error
func SubscribeFailed(dataset string, err error) *LensError {
	return Wrap(err, ErrCodeSubscribeFailed, fmt.Sprintf("failed to subscribe to events for dataset '%s'", dataset)).
		WithDetail("dataset", dataset)
}

// EventDecode creates a malformed event payload error
func EventDecode(event string, err error) *LensError {
	return Wrap(err, ErrCodeEventDecode, fmt.Sprintf("failed to decode '%s' event payload", event)).
		WithDetail("event", event)
}

// SendFailed creates an outbound message send failure error
func SendFailed(msgType string, err error) *LensError {
	return Wrap(err, ErrCodeSendFailed, fmt.Sprintf("failed to send '%s' message", msgType)).
		WithDetail("type", msgType)
}
