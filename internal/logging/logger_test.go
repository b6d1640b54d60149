package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitJSONFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithOutput(&buf)
	defer Log.SetOutput(&bytes.Buffer{})

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", Log.GetLevel())
	}

	For("test").WithField("tick", 3).Debug("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log line %q: %v", buf.String(), err)
	}
	if entry["component"] != "test" {
		t.Errorf("Expected component 'test', got %v", entry["component"])
	}
	if entry["msg"] != "hello" {
		t.Errorf("Expected msg 'hello', got %v", entry["msg"])
	}
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "text")

	InitWithOutput(&bytes.Buffer{})

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level, got %v", Log.GetLevel())
	}
}
