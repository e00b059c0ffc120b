package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/network"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	"go.uber.org/zap"
)

const defaultModes = "tube,overground,elizabeth-line,dlr,tram,national-rail"

func ReferenceRequest(ctx context.Context, baseURL, endpoint string) (*http.Response, error) {
	client := &http.Client{Timeout: 2 * time.Minute}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	if apiKey := os.Getenv("TFL_APP_KEY"); apiKey != "" {
		q := req.URL.Query()
		q.Set("app_key", apiKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: unexpected status %s", endpoint, resp.Status)
	}
	return resp, nil
}

func FetchStopPoints(ctx context.Context, baseURL, modes string) ([]types.StopPoint, error) {
	res, err := ReferenceRequest(ctx, baseURL, "/StopPoint/Mode/"+modes)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var response types.StopPointResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	return response.StopPoints, nil
}

// BuildDocument groups stop points by common name. Each station gets the
// sorted set of lines calling at any of its stop points, and each line lists
// its stations in name order.
func BuildDocument(stops []types.StopPoint) types.NetworkDocument {
	doc := types.NetworkDocument{
		Stations: map[string][]string{},
		Lines:    map[string]types.LineEntry{},
	}

	for _, stop := range stops {
		name := strings.TrimSpace(stop.CommonName)
		if name == "" {
			continue
		}
		lines := doc.Stations[name]
		if lines == nil {
			lines = []string{}
		}
		for _, line := range stop.Lines {
			if line.Name != "" {
				lines = append(lines, line.Name)
			}
		}
		doc.Stations[name] = lines
	}

	for name, lines := range doc.Stations {
		slices.Sort(lines)
		lines = slices.Compact(lines)
		doc.Stations[name] = lines

		for _, line := range lines {
			entry := doc.Lines[line]
			entry.Stations = append(entry.Stations, name)
			doc.Lines[line] = entry
		}
	}

	for line, entry := range doc.Lines {
		slices.Sort(entry.Stations)
		doc.Lines[line] = entry
	}

	return doc
}

func run(ctx context.Context, args []string, log *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("network-builder", flag.ContinueOnError)
	out := fs.String("out", "tube_network.json", "where to write the station network")
	modes := fs.String("modes", defaultModes, "comma-separated TfL modes to include")
	baseURL := fs.String("api", utils.GetEnv("TFL_API", "https://api.tfl.gov.uk"), "TfL unified API base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stops, err := FetchStopPoints(ctx, *baseURL, *modes)
	if err != nil {
		return fmt.Errorf("fetch stop points: %w", err)
	}
	doc := BuildDocument(stops)

	n, err := network.New(doc)
	if err != nil {
		return err
	}
	if err := n.Validate(); err != nil {
		log.Warnw("built network has inconsistencies", "error", err)
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, b, 0644); err != nil {
		return err
	}

	log.Infow("wrote station network", "path", *out, "stations", len(doc.Stations), "lines", len(doc.Lines))
	return nil
}

func main() {
	utils.InitLogger("network-builder")
	defer utils.SyncLogger()
	log := utils.GetLogger()

	if err := run(context.Background(), os.Args[1:], log); err != nil {
		log.Fatalw("failed to build station network", "error", err)
	}
}
