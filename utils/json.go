package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// APIResponse is the envelope every machine-readable command result uses
type APIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// OutputJSON marshals and prints a standardized API response
func OutputJSON(status string, data interface{}, err error) {
	response := APIResponse{
		Status: status,
	}

	if err != nil {
		response.Status = "error"
		response.Error = err.Error()
	} else if data != nil {
		response.Data = data
	}

	out, jsonErr := json.Marshal(response)
	if jsonErr != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", jsonErr)
		return
	}

	fmt.Println(string(out))
}

// FormatID combines a source ID and a resource ID into "source:id"
func FormatID(sourceID, resourceID string) string {
	return fmt.Sprintf("%s:%s", sourceID, resourceID)
}

// ParseID splits a combined "source:id" on the first colon. Resource IDs may
// themselves contain colons (viewer URLs do), so only the first one counts.
func ParseID(combined string) (sourceID string, resourceID string, err error) {
	parts := strings.SplitN(combined, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid ID format %q, must be 'source:id'", combined)
	}
	return parts[0], parts[1], nil
}
