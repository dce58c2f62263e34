package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

// Request helper
func sendChat(baseURL, sessionId, message string) (*http.Response, []byte, error) {
	jsonBody, _ := json.Marshal(map[string]string{"message": message})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", sessionId)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// Walks a running server through a short conversation and prints each reply.
func main() {
	baseURL := flag.String("url", "http://localhost:8000", "server base URL")
	flag.Parse()

	sessionId := fmt.Sprintf("smoke-%d", time.Now().Unix())
	color.Cyan("🚀 Chat smoke test against %s (session %s)\n", *baseURL, sessionId)

	steps := []string{
		"Hello!",
		"Tell me about Raigad fort",
		"Who built it?",
		"Compare Sinhagad and Torna fort in a table",
	}

	failed := false
	for i, message := range steps {
		color.Yellow("\n%d. %s", i+1, message)

		resp, body, err := sendChat(*baseURL, sessionId, message)
		if err != nil {
			color.Red("Failed: %v", err)
			failed = true
			continue
		}
		if resp.StatusCode != http.StatusOK {
			color.Red("Status: %s %s", resp.Status, string(body))
			failed = true
			continue
		}
		color.Green("Status: %s", resp.Status)

		var res struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(body, &res); err != nil {
			color.Red("Bad body: %s", string(body))
			failed = true
			continue
		}
		fmt.Println(res.Response)
	}

	if failed {
		os.Exit(1)
	}
}
