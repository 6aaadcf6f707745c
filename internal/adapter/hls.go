package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	m3u8 "github.com/Eyevinn/hls-m3u8/m3u8"
	"github.com/samber/lo"
)

const hlsVideoTrackID = "main"

// hls plays HTTP Live Streaming sources. Automatic quality plays the master
// playlist and lets the element adapt; a manual choice plays the variant
// playlist directly. Audio renditions switch in place when the element can.
type hls struct {
	*base
}

func newHLS(opts Options) *hls {
	return &hls{base: newBase(opts)}
}

func (h *hls) Initialize(opts InitOptions) {
	if h.destroyed {
		return
	}
	h.attach(opts)
	h.watchRenditions(KindAudio)
	h.fetch(h.source.URL, func(body []byte, err error) {
		if err != nil {
			h.fail(fmt.Errorf("fetch playlist: %w", err))
			return
		}
		video, audio, live, err := parseHLS(h.source.URL, body)
		if err != nil {
			h.fail(err)
			return
		}
		h.live = h.live || live
		h.video, h.audio = video, audio
		h.send(TracksChanged{Video: h.video, Audio: h.audio})
		h.load(h.source.URL)
	})
}

func (h *hls) SetRepresentation(kind Kind, trackID, repID string) {
	if kind == KindAudio {
		h.selectInPlace(kind, trackID, repID)
		return
	}
	h.reloadRepresentation(kind, trackID, repID)
}

func (h *hls) SetAutoQuality(kind Kind) {
	if kind == KindAudio {
		h.autoInPlace(kind)
		return
	}
	h.switchReload(KindVideo, hlsVideoTrackID, "", h.source.URL)
}

// parseHLS turns a playlist into tracks. A master playlist yields one video
// track holding every variant plus one audio track per audio rendition; a
// media playlist yields a single representation playing the source itself.
func parseHLS(playlistURL string, body []byte) (video, audio []Track, live bool, err error) {
	pl, listType, err := m3u8.DecodeFrom(bytes.NewReader(body), true)
	if err != nil {
		return nil, nil, false, fmt.Errorf("parse playlist: %w", err)
	}

	switch listType {
	case m3u8.MEDIA:
		media, ok := pl.(*m3u8.MediaPlaylist)
		if !ok {
			return nil, nil, false, errors.New("parse playlist: unexpected media playlist type")
		}
		video = []Track{{
			ID:                     hlsVideoTrackID,
			Kind:                   KindVideo,
			Representations:        []Representation{{ID: "0", URL: playlistURL}},
			ActiveRepresentationID: "0",
		}}
		return video, nil, !media.Closed, nil

	case m3u8.MASTER:
		master, ok := pl.(*m3u8.MasterPlaylist)
		if !ok {
			return nil, nil, false, errors.New("parse playlist: unexpected master playlist type")
		}
		var reps []Representation
		seen := map[string]bool{}
		for i, v := range master.Variants {
			if v == nil || v.Iframe {
				continue
			}
			uri, err := resolveURL(playlistURL, v.URI)
			if err != nil {
				return nil, nil, false, err
			}
			w, h := parseResolution(v.Resolution)
			reps = append(reps, Representation{
				ID:      strconv.Itoa(i),
				Bitrate: int64(v.Bandwidth),
				Width:   w,
				Height:  h,
				URL:     uri,
			})
			for _, alt := range v.Alternatives {
				if alt == nil || !strings.EqualFold(alt.Type, "AUDIO") {
					continue
				}
				id := alt.GroupId + "/" + alt.Name
				if seen[id] {
					continue
				}
				seen[id] = true
				altURI := playlistURL
				if alt.URI != "" {
					if altURI, err = resolveURL(playlistURL, alt.URI); err != nil {
						return nil, nil, false, err
					}
				}
				audio = append(audio, Track{
					ID:                     id,
					Kind:                   KindAudio,
					Language:               alt.Language,
					Representations:        []Representation{{ID: alt.Name, URL: altURI}},
					ActiveRepresentationID: lo.Ternary(alt.Default, alt.Name, ""),
				})
			}
		}
		if len(reps) == 0 {
			return nil, nil, false, errors.New("parse playlist: master playlist has no variants")
		}
		video = []Track{{ID: hlsVideoTrackID, Kind: KindVideo, Representations: reps}}
		return video, audio, false, nil

	default:
		return nil, nil, false, fmt.Errorf("parse playlist: unknown playlist type %v", listType)
	}
}

func resolveURL(baseURL, ref string) (string, error) {
	b, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse playlist url: %w", err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse variant url %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

// parseResolution reads "1280x720". Malformed values give zeros.
func parseResolution(s string) (width, height int) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return w, h
}
