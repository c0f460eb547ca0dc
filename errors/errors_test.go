package errors

import (
	"fmt"
	"testing"
)

func TestLensError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeDatasetNotFound, "dataset not found")
	if err.Code != ErrCodeDatasetNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeDatasetNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeSendFailed, "send failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeSendFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeDatasetNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("dataset", "quickstart").WithDetail("samples", 200)
	if detailed.Details["dataset"] != "quickstart" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test DatasetNotFound
	err := DatasetNotFound("quickstart")
	if err.Code != ErrCodeDatasetNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeDatasetNotFound, err.Code)
	}
	if err.Details["dataset"] != "quickstart" {
		t.Error("DatasetNotFound should include dataset detail")
	}

	// Test PluginLoad
	err = PluginLoad("heatmap", fmt.Errorf("bad manifest"))
	if err.Code != ErrCodePluginLoad {
		t.Errorf("expected code %s, got %s", ErrCodePluginLoad, err.Code)
	}
	if err.Details["plugin"] != "heatmap" {
		t.Error("PluginLoad should include plugin detail")
	}

	// Test SendFailed
	err = SendFailed("filters_update", fmt.Errorf("connection reset"))
	if err.Code != ErrCodeSendFailed {
		t.Errorf("expected code %s, got %s", ErrCodeSendFailed, err.Code)
	}
	if err.Details["type"] != "filters_update" {
		t.Error("SendFailed should include message type detail")
	}

	// Test GetCode on a wrapped chain
	outer := fmt.Errorf("outer: %w", err)
	if GetCode(outer) != ErrCodeSendFailed {
		t.Error("GetCode should unwrap to find the code")
	}
}
