package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func baseURL() string {
	if url := os.Getenv("E2E_BASE_URL"); url != "" {
		return url
	}
	switch os.Getenv("ENV") {
	case "CI":
		return "http://core-app:8080/api"
	}
	return "http://localhost:8080/api"
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type roomResponse struct {
	ID           string   `json:"id"`
	Host         string   `json:"host"`
	Participants []string `json:"participants"`
}

type apiClient struct {
	http *http.Client
	base string
}

func main() {
	fmt.Println("Starting E2E tests for rooms API...")

	c := &apiClient{
		http: &http.Client{Timeout: 30 * time.Second},
		base: baseURL(),
	}

	if !c.waitForService() {
		os.Exit(1)
	}
	if err := c.roomFlow(); err != nil {
		fmt.Printf("Room flow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n All E2E tests passed!")
}

func (c *apiClient) waitForService() bool {
	fmt.Println(" Waiting for service to be ready...")

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		resp, err := c.http.Get(c.base + "/rooms")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Println(" Service is ready!")
				return true
			}
		}

		if i < maxRetries-1 {
			fmt.Printf(" Service not ready yet (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
		}
	}

	fmt.Println(" Service didn't start in time")
	return false
}

// roomFlow registers two fresh users and walks a room through
// create, join, host transfer and leave.
func (c *apiClient) roomFlow() error {
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	fmt.Println("\n Step 1: Registering users...")
	hostToken, err := c.register("host-" + suffix)
	if err != nil {
		return err
	}
	guestName := "guest-" + suffix
	guestToken, err := c.register(guestName)
	if err != nil {
		return err
	}

	fmt.Println("\n Step 2: Creating room...")
	var room roomResponse
	if err := c.call(http.MethodPost, "/rooms/create", hostToken,
		map[string]any{"name": "e2e-" + suffix, "capacity": 2}, http.StatusOK, &room); err != nil {
		return err
	}

	fmt.Println("\n Step 3: Joining room...")
	if err := c.call(http.MethodPut, "/rooms/join", guestToken,
		map[string]string{"roomId": room.ID}, http.StatusOK, &room); err != nil {
		return err
	}
	if len(room.Participants) != 2 {
		return fmt.Errorf("expected 2 participants, got %d", len(room.Participants))
	}

	fmt.Println("\n Step 4: Transferring host...")
	host := room.Host
	if err := c.call(http.MethodPut, "/rooms/host", hostToken,
		map[string]string{"roomId": room.ID, "newHost": guestName}, http.StatusOK, &room); err != nil {
		return err
	}
	if room.Host == host {
		return fmt.Errorf("host did not change")
	}

	fmt.Println("\n Step 5: Leaving room...")
	if err := c.call(http.MethodPut, "/rooms/leave", hostToken,
		map[string]string{"roomId": room.ID}, http.StatusOK, &room); err != nil {
		return err
	}
	if len(room.Participants) != 1 {
		return fmt.Errorf("expected 1 participant, got %d", len(room.Participants))
	}

	return nil
}

func (c *apiClient) register(username string) (string, error) {
	var resp tokenResponse
	err := c.call(http.MethodPost, "/users/register", "",
		credentials{Username: username, Password: "e2e-secret"}, http.StatusOK, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("no token for %s", username)
	}
	return resp.Token, nil
}

func (c *apiClient) call(method, path, token string, in any, expectStatus int, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest(method, c.base+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}
	if resp.StatusCode != expectStatus {
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
