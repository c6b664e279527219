// Package main is an interactive console front end for the teller server.
// It reads keypad button labels from stdin, translates them into the
// session machine's key alphabet, posts them to the server and prints the
// two display lines.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const apiKey = "/api/key"

// buttonLabels maps the physical keypad button captions to key labels.
// Digits, "CLR" and "Ent" pass through unchanged.
var buttonLabels = map[string]string{
	"W/D":         "withdraw",
	"Dep":         "deposit",
	"Bal":         "balance",
	"Fin":         "finish",
	"Change PIN":  "changePassword",
	"New Account": "newAccount",
}

type keyRequest struct {
	Key string `json:"key"`
}

type displayResponse struct {
	Display1 string `json:"display1"`
	Display2 string `json:"display2"`
	State    string `json:"state"`
}

// press posts one key label and returns the resulting display lines.
func press(client *http.Client, baseURL, key string) (*displayResponse, error) {
	body, err := json.Marshal(keyRequest{Key: key})
	if err != nil {
		return nil, err
	}
	resp, err := client.Post(baseURL+apiKey, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	var display displayResponse
	if err := json.NewDecoder(resp.Body).Decode(&display); err != nil {
		return nil, err
	}
	return &display, nil
}

// repl runs the interactive loop, sending each entered button to the server.
func repl(client *http.Client, baseURL string) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Type a key (0-9, CLR, Ent, W/D, Dep, Bal, Fin, Change PIN, New Account) or 'exit'.")
	for {
		fmt.Print("atm> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			fmt.Println("Bye")
			return
		}

		key := line
		if label, ok := buttonLabels[line]; ok {
			key = label
		}

		display, err := press(client, baseURL, key)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if display.Display1 != "" {
			fmt.Println(display.Display1)
		}
		fmt.Println(display.Display2)
	}
}

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "server", "http://localhost:8080", "teller server base URL")
	flag.Parse()

	repl(&http.Client{}, baseURL)
}
