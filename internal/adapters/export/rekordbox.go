package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// Rekordbox's DJ_PLAYLISTS document: a flat COLLECTION of tracks plus a
// PLAYLISTS tree that references them by numeric key.

type rbDocument struct {
	XMLName    xml.Name     `xml:"DJ_PLAYLISTS"`
	Version    string       `xml:"Version,attr"`
	Collection rbCollection `xml:"COLLECTION"`
	Playlists  rbPlaylists  `xml:"PLAYLISTS"`
}

type rbCollection struct {
	Tracks rbTrackList `xml:"TRACKS"`
}

type rbTrackList struct {
	Entries int       `xml:"Entries,attr"`
	Tracks  []rbTrack `xml:"TRACK"`
}

type rbTrack struct {
	TrackID    int    `xml:"TrackID,attr"`
	Location   string `xml:"Location,attr"`
	Name       string `xml:"Name"`
	AverageBpm string `xml:"AverageBpm"`
	Tonality   string `xml:"Tonality"`
	TotalTime  string `xml:"TotalTime"`
}

type rbPlaylists struct {
	Root rbNode `xml:"NODE"`
}

type rbNode struct {
	Type     string      `xml:"Type,attr,omitempty"`
	Name     string      `xml:"Name,attr"`
	Children []rbNode    `xml:"NODE,omitempty"`
	Playlist *rbPlaylist `xml:"PLAYLIST,omitempty"`
}

type rbPlaylist struct {
	Type   string      `xml:"Type,attr"`
	Name   string      `xml:"Name,attr"`
	Tracks []rbKeyNode `xml:"TRACKS>TRACK"`
}

type rbKeyNode struct {
	Key int `xml:"Key,attr"`
}

// WriteRekordboxXML writes a Rekordbox-importable DJ_PLAYLISTS document.
func WriteRekordboxXML(w io.Writer, name string, tracks []domain.TrackFeatureSet) error {
	doc := rbDocument{Version: "1.0.0"}
	doc.Collection.Tracks.Entries = len(tracks)

	playlist := rbPlaylist{Type: "1", Name: name}
	for i, track := range tracks {
		doc.Collection.Tracks.Tracks = append(doc.Collection.Tracks.Tracks, rbTrack{
			TrackID:    i + 1,
			Location:   "file://localhost/" + track.Ref,
			Name:       track.Ref,
			AverageBpm: strconv.Itoa(int(track.Tempo)),
			Tonality:   track.Key.String(),
			TotalTime:  strconv.Itoa(int(track.Duration * 1000)),
		})
		playlist.Tracks = append(playlist.Tracks, rbKeyNode{Key: i + 1})
	}

	doc.Playlists.Root = rbNode{
		Type: "1",
		Name: "ROOT",
		Children: []rbNode{
			{Name: name, Playlist: &playlist},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("export: write rekordbox xml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: write rekordbox xml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("export: write rekordbox xml: %w", err)
	}
	return nil
}
