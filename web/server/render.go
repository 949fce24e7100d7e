package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	writeWait    = 10 * time.Second
	pingPeriod   = 30 * time.Second
	previewWidth = 256
)

// contentTypes maps output formats to their MIME types
var contentTypes = map[output.Format]string{
	output.PNG:  "image/png",
	output.WebP: "image/webp",
	output.PPM:  "image/x-portable-pixmap",
}

// StreamMessage is one JSON message on the render WebSocket
type StreamMessage struct {
	Type     string          `json:"type"` // "start", "console", "tile", "complete", "error"
	ClientID string          `json:"clientId,omitempty"`
	RenderID string          `json:"renderId,omitempty"`
	Start    *StartUpdate    `json:"start,omitempty"`
	Console  *ConsoleMessage `json:"console,omitempty"`
	Tile     *TileUpdate     `json:"tile,omitempty"`
	Complete *CompleteUpdate `json:"complete,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// StartUpdate describes the render that is about to run
type StartUpdate struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Samples    int    `json:"samples"`
	MaxDepth   int    `json:"maxDepth"`
	TileSize   int    `json:"tileSize"`
	TotalTiles int    `json:"totalTiles"`
}

// TileUpdate represents a single finished tile
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles completed so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate carries the finished image and its statistics
type CompleteUpdate struct {
	ImageData   string `json:"imageData"`   // Base64 encoded PNG of the full image
	PreviewData string `json:"previewData"` // Base64 encoded PNG scaled to at most previewWidth
	Stats       Stats  `json:"stats"`
}

// handleRenderImage renders a scene synchronously and returns the encoded image
func (s *Server) handleRenderImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.buildScene(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	renderID := renderer.NewRenderID()
	logger := NewWebLogger(renderID, nil, s.logger)
	rt := renderer.NewRaytracer(sceneObj, s.rendererConfig(req, renderID), logger)
	result, err := rt.Render(r.Context(), nil)
	if err != nil {
		if r.Context().Err() != nil {
			return // Client went away
		}
		writeError(w, http.StatusInternalServerError, "render failed: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, result.Image, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-ID", result.ID)
	w.Header().Set("X-Render-Seed", strconv.FormatInt(result.Seed, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// rendererConfig returns the renderer settings for a request
func (s *Server) rendererConfig(req *RenderRequest, renderID string) renderer.Config {
	return renderer.Config{
		TileSize:   s.cfg.TileSize,
		NumWorkers: s.cfg.Workers,
		Seed:       req.Seed,
		ID:         renderID,
	}
}

// renderClient is one WebSocket connection watching a render
type renderClient struct {
	conn     *websocket.Conn
	send     chan []byte
	clientID string
	renderID string
}

// push queues msg for the writer, giving up when ctx is done
func (c *renderClient) push(ctx context.Context, msg StreamMessage) bool {
	msg.ClientID = c.clientID
	msg.RenderID = c.renderID
	data, err := json.Marshal(msg)
	if err != nil {
		return false
	}

	select {
	case c.send <- data:
		return true
	case <-ctx.Done():
		return false
	}
}

// writePump writes queued messages until send is closed. A failed write cancels the render.
func (c *renderClient) writePump(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, writeCancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			writeCancel()
			if err != nil {
				cancel()
				return
			}

		case <-ticker.C:
			pingCtx, pingCancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			pingCancel()
			if err != nil {
				cancel()
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleRenderSocket streams a render over a WebSocket: a start message, console
// lines and tiles as they finish, then the complete image.
func (s *Server) handleRenderSocket(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Origins(),
	})
	if err != nil {
		s.logger.Error("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	client := &renderClient{
		conn:     conn,
		send:     make(chan []byte, 256),
		clientID: uuid.New().String(),
		renderID: renderer.NewRenderID(),
	}
	s.logger.Info("render client connected", "client", client.clientID, "render", client.renderID, "scene", req.Scene)

	// The client sends nothing; CloseRead cancels ctx when it disconnects
	ctx, cancel := context.WithCancel(conn.CloseRead(r.Context()))
	defer cancel()

	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		client.writePump(ctx, cancel)
	}()

	err = s.streamRender(ctx, client, req)
	if err != nil && ctx.Err() == nil {
		client.push(ctx, StreamMessage{Type: "error", Error: err.Error()})
	}

	close(client.send)
	writer.Wait()

	if ctx.Err() != nil {
		s.logger.Info("render client disconnected", "client", client.clientID, "render", client.renderID)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "render finished")
}

// streamRender builds the scene and runs the render, pushing progress to client
func (s *Server) streamRender(ctx context.Context, client *renderClient, req *RenderRequest) error {
	sceneObj, err := s.buildScene(req)
	if err != nil {
		return err
	}

	config := s.rendererConfig(req, client.renderID)
	tileSize := config.TileSize
	if tileSize <= 0 {
		tileSize = renderer.DefaultTileSize
	}
	sampling := sceneObj.SamplingConfig
	client.push(ctx, StreamMessage{Type: "start", Start: &StartUpdate{
		Scene:      sceneObj.Name,
		Width:      sampling.Width,
		Height:     sampling.Height,
		Samples:    sampling.SamplesPerPixel,
		MaxDepth:   sampling.MaxDepth,
		TileSize:   tileSize,
		TotalTiles: len(renderer.NewTileGrid(sampling.Width, sampling.Height, tileSize)),
	}})

	// Console lines are forwarded by their own goroutine so logging never blocks the render
	consoleChan := make(chan ConsoleMessage, 50)
	var forwarder sync.WaitGroup
	forwarder.Add(1)
	go func() {
		defer forwarder.Done()
		for msg := range consoleChan {
			client.push(ctx, StreamMessage{Type: "console", Console: &msg})
		}
	}()

	rt := renderer.NewRaytracer(sceneObj, config, NewWebLogger(client.renderID, consoleChan, s.logger))
	result, err := rt.Render(ctx, func(tile renderer.TileCompletionResult) {
		tileData, err := imageToBase64PNG(tile.TileImage)
		if err != nil {
			s.logger.Error("encode tile", "tileX", tile.TileX, "tileY", tile.TileY, "error", err)
			return
		}
		client.push(ctx, StreamMessage{Type: "tile", Tile: &TileUpdate{
			TileX:      tile.TileX,
			TileY:      tile.TileY,
			ImageData:  tileData,
			TileNumber: tile.TileNumber,
			TotalTiles: tile.TotalTiles,
		}})
	})

	close(consoleChan)
	forwarder.Wait()
	if err != nil {
		return err
	}

	imageData, err := imageToBase64PNG(result.Image)
	if err != nil {
		return err
	}
	previewData, err := imageToBase64PNG(previewImage(result.Image, previewWidth))
	if err != nil {
		return err
	}

	client.push(ctx, StreamMessage{Type: "complete", Complete: &CompleteUpdate{
		ImageData:   imageData,
		PreviewData: previewData,
		Stats:       renderStats(result, sampling),
	}})
	return nil
}

// renderStats converts renderer statistics for the client
func renderStats(result *renderer.Result, sampling scene.SamplingConfig) Stats {
	return Stats{
		RenderID:         result.ID,
		Seed:             result.Seed,
		Width:            sampling.Width,
		Height:           sampling.Height,
		TotalPixels:      result.Stats.TotalPixels,
		TotalSamples:     result.Stats.TotalSamples,
		AverageSamples:   result.Stats.AverageSamples,
		SamplesPerSecond: result.Stats.SamplesPerSecond(),
		ElapsedMs:        result.Stats.Duration.Milliseconds(),
	}
}

// previewImage scales img down to at most maxWidth pixels wide, keeping the aspect ratio
func previewImage(img *image.RGBA, maxWidth int) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return img
	}

	height := max(1, bounds.Dy()*maxWidth/bounds.Dx())
	preview := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(preview, preview.Bounds(), img, bounds, draw.Src, nil)
	return preview
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
