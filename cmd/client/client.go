// Smoke client: walks the whole API on a running server, from registration
// to collection integration.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

const baseURL = "http://127.0.0.1:8080/api/v1"

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*60)
	defer cancel()

	if err := slogx.InitGlobal(
		os.Stdout,
		"info",
		true,
	); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	c := &client{http: &http.Client{Timeout: 30 * time.Second}}

	username := fmt.Sprintf("smoke-%d", time.Now().Unix())
	if err := c.register(ctx, username); err != nil {
		return err
	}
	if err := c.login(ctx, username); err != nil {
		return err
	}

	var noteIDs []int64
	for i := 1; i <= 3; i++ {
		id, err := c.createNote(ctx, fmt.Sprintf("Smoke note %d", i))
		if err != nil {
			return err
		}
		noteIDs = append(noteIDs, id)
	}

	collectionID, err := c.createCollection(ctx, "Smoke collection")
	if err != nil {
		return err
	}

	for _, noteID := range noteIDs {
		if err := c.addNote(ctx, collectionID, noteID); err != nil {
			return err
		}
	}

	// Reverse the order to exercise reorder.
	reversed := make([]int64, 0, len(noteIDs))
	for i := len(noteIDs) - 1; i >= 0; i-- {
		reversed = append(reversed, noteIDs[i])
	}
	if err := c.reorder(ctx, collectionID, reversed); err != nil {
		return err
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		if err := c.integrate(ctx, collectionID, key); err != nil {
			return err
		}
	} else {
		slogx.Info(ctx, "GEMINI_API_KEY not set, skipping integration")
	}

	return nil
}

type client struct {
	http  *http.Client
	token string
}

func (c *client) register(ctx context.Context, username string) error {
	body := map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "smoke-password",
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return fmt.Errorf("register: %v", err)
	}

	slogx.Info(ctx, "registered", slogx.UserId(resp.ID))
	return nil
}

func (c *client) login(ctx context.Context, username string) error {
	body := map[string]any{"username": username, "password": "smoke-password"}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return fmt.Errorf("login: %v", err)
	}

	c.token = resp.AccessToken
	slogx.Info(ctx, "logged in")
	return nil
}

func (c *client) createNote(ctx context.Context, title string) (int64, error) {
	body := map[string]any{
		"title":   title,
		"content": "Content of " + title,
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/notes", body, &resp); err != nil {
		return 0, fmt.Errorf("create note: %v", err)
	}

	slogx.Info(ctx, "created note", slogx.NoteId(resp.ID))
	return resp.ID, nil
}

func (c *client) createCollection(ctx context.Context, name string) (int64, error) {
	body := map[string]any{"name": name, "description": "smoke test"}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/collections", body, &resp); err != nil {
		return 0, fmt.Errorf("create collection: %v", err)
	}

	slogx.Info(ctx, "created collection", slogx.CollectionId(resp.ID))
	return resp.ID, nil
}

func (c *client) addNote(ctx context.Context, collectionID, noteID int64) error {
	body := map[string]any{"note_id": noteID}

	path := fmt.Sprintf("/collections/%d/notes", collectionID)
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("add note to collection: %v", err)
	}

	return nil
}

func (c *client) reorder(ctx context.Context, collectionID int64, noteIDs []int64) error {
	body := map[string]any{"note_ids": noteIDs}

	path := fmt.Sprintf("/collections/%d/notes/reorder", collectionID)
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("reorder collection: %v", err)
	}

	slogx.Info(ctx, "reordered collection", slogx.CollectionId(collectionID))
	return nil
}

func (c *client) integrate(ctx context.Context, collectionID int64, apiKey string) error {
	body := map[string]any{"api_key": apiKey}

	var resp struct {
		IntegratedContent string `json:"integrated_content"`
		NoteCount         int    `json:"note_count"`
	}

	path := fmt.Sprintf("/collections/%d/integrate", collectionID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return fmt.Errorf("integrate collection: %v", err)
	}

	slogx.Info(ctx, "integrated collection",
		slog.Int("note_count", resp.NoteCount),
		slog.Int("content_len", len(resp.IntegratedContent)),
	)
	return nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
