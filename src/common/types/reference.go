package types

// NetworkDocument is the on-disk shape of the station network file.
type NetworkDocument struct {
	Stations       map[string][]string  `json:"stations"`
	Lines          map[string]LineEntry `json:"lines"`
	StationAliases map[string]string    `json:"station_aliases,omitempty"`
}

type LineEntry struct {
	Stations []string `json:"stations"`
}

// StopPointResponse is the subset of the TfL StopPoint/Mode response used to
// build a NetworkDocument.
type StopPointResponse struct {
	StopPoints []StopPoint `json:"stopPoints"`
}

type StopPoint struct {
	CommonName string           `json:"commonName"`
	Lines      []LineIdentifier `json:"lines"`
}

type LineIdentifier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
