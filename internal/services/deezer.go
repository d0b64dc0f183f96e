// Deezer [Service] implementation
//
// Talks to the gw-light endpoint used by the deezer.com web player. Requests are authenticated with the "sid" session
// cookie; write methods additionally need the api_token returned as checkForm by deezer.getUserData.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultDeezerBaseURL = "https://www.deezer.com"
	gwLightPath          = "/ajax/gw-light.php"

	methodUserData    = "deezer.getUserData"
	methodUserMenu    = "deezer.userMenu"
	methodGetSongs    = "playlist.getSongs"
	methodDeleteSongs = "playlist.deleteSongs"

	notLoggedInUserID     = "0"
	playlistTypeFavorites = "4"
	maxPlaylistSongs      = 2000
)

// flexString decodes JSON strings and numbers alike; gw-light is not consistent about id types.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) Int() int {
	n, _ := strconv.Atoi(string(f))
	return n
}

// DeezerUser is the USER object of deezer.getUserData.
type DeezerUser struct {
	UserID   flexString `json:"USER_ID"`
	BlogName string     `json:"BLOG_NAME"`
}

type deezerUserData struct {
	User      DeezerUser `json:"USER"`
	CheckForm string     `json:"checkForm"`
}

// DeezerPlaylist is a playlist entry of deezer.userMenu.
type DeezerPlaylist struct {
	PlaylistID flexString `json:"PLAYLIST_ID"`
	Title      string     `json:"TITLE"`
	NbSong     flexString `json:"NB_SONG"`
	Type       flexString `json:"TYPE"`
}

type deezerUserMenu struct {
	Playlists struct {
		Data []DeezerPlaylist `json:"data"`
	} `json:"PLAYLISTS"`
}

// DeezerSong is a song entry of playlist.getSongs.
type DeezerSong struct {
	SngID    flexString `json:"SNG_ID"`
	SngTitle string     `json:"SNG_TITLE"`
	Version  string     `json:"VERSION"`
	ISRC     string     `json:"ISRC"`
	ArtID    flexString `json:"ART_ID"`
	ArtName  string     `json:"ART_NAME"`
	AlbTitle string     `json:"ALB_TITLE"`
	Duration flexString `json:"DURATION"`
}

func (s DeezerSong) toTrack() models.Track {
	return models.Track{
		ID:       string(s.SngID),
		Title:    s.SngTitle,
		Version:  s.Version,
		ISRC:     s.ISRC,
		ArtistID: string(s.ArtID),
		Artist:   s.ArtName,
		Album:    s.AlbTitle,
		Duration: s.Duration.Int(),
	}
}

type deezerSongs struct {
	Data  []DeezerSong `json:"data"`
	Total int          `json:"total"`
}

type gwResponse struct {
	Error   json.RawMessage `json:"error"`
	Results json.RawMessage `json:"results"`
}

// failed reports whether the error field is set to anything but an empty list.
func (r gwResponse) failed() bool {
	switch strings.TrimSpace(string(r.Error)) {
	case "", "[]", "null":
		return false
	}
	return true
}

// DeezerOpts configures a [DeezerService].
type DeezerOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	RateLimit  float64 // Requests per second, 0 disables pacing
	Logger     *log.Logger
}

// DeezerService implements the [Service] interface against the Deezer gw-light API.
//
// The session and API token are guarded so playlist jobs can share one instance.
type DeezerService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	mu       sync.RWMutex
	sid      string
	apiToken string
	user     *models.User
}

// NewDeezerService creates a new Deezer service instance.
func NewDeezerService(opts DeezerOpts) *DeezerService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultDeezerBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &DeezerService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		limiter:    limiter,
		logger:     opts.Logger,
	}
}

// SetLogger replaces the logger used for warnings about fetched playlists.
func (d *DeezerService) SetLogger(l *log.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// Name returns the service name.
func (d *DeezerService) Name() string {
	return "Deezer"
}

// Authenticate validates a session cookie. Expects credentials["sid"].
//
// On success the api token and user are cached for later calls.
func (d *DeezerService) Authenticate(ctx context.Context, credentials map[string]string) error {
	sid, ok := credentials["sid"]
	if !ok || sid == "" {
		return fmt.Errorf("%w: missing sid in credentials", shared.ErrNotAuthenticated)
	}

	d.mu.Lock()
	d.sid = sid
	d.apiToken = ""
	d.user = nil
	d.mu.Unlock()

	var data deezerUserData
	if err := d.call(ctx, methodUserData, nil, &data); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if string(data.User.UserID) == "" || string(data.User.UserID) == notLoggedInUserID {
		return fmt.Errorf("%w: session is invalid or expired", shared.ErrNotAuthenticated)
	}

	d.mu.Lock()
	d.apiToken = data.CheckForm
	d.user = &models.User{ID: string(data.User.UserID), Name: data.User.BlogName}
	d.mu.Unlock()

	return nil
}

// CurrentUser returns the user resolved by [DeezerService.Authenticate].
func (d *DeezerService) CurrentUser() (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.user == nil {
		return nil, shared.ErrNotAuthenticated
	}
	u := *d.user
	return &u, nil
}

// GetPlaylists retrieves the user's playlists, favourites first, numbered from 0.
func (d *DeezerService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var menu deezerUserMenu
	if err := d.call(ctx, methodUserMenu, nil, &menu); err != nil {
		return nil, err
	}

	var favorites []models.Playlist
	var others []models.Playlist
	for _, p := range menu.Playlists.Data {
		pl := models.Playlist{
			ID:         string(p.PlaylistID),
			Title:      p.Title,
			TrackCount: p.NbSong.Int(),
			Favorites:  string(p.Type) == playlistTypeFavorites,
		}
		if pl.Favorites {
			favorites = append(favorites, pl)
		} else {
			others = append(others, pl)
		}
	}

	playlists := append(favorites, others...)
	for i := range playlists {
		playlists[i].Index = i
	}
	return playlists, nil
}

// GetTracks retrieves up to 2000 songs of a playlist in server order.
//
// A longer playlist is logged as a warning and only its first 2000 songs are returned.
func (d *DeezerService) GetTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	body := map[string]any{
		"playlist_id": playlistID,
		"start":       0,
		"nb":          maxPlaylistSongs,
	}

	var songs deezerSongs
	if err := d.call(ctx, methodGetSongs, body, &songs); err != nil {
		return nil, err
	}

	if songs.Total > len(songs.Data) {
		d.mu.RLock()
		logger := d.logger
		d.mu.RUnlock()
		logger.Warn("playlist has more songs than one fetch returns; the rest are not checked",
			"playlist", playlistID, "fetched", len(songs.Data), "total", songs.Total)
	}

	tracks := make([]models.Track, 0, len(songs.Data))
	for _, s := range songs.Data {
		tracks = append(tracks, s.toTrack())
	}
	return tracks, nil
}

// RemoveTracks deletes the given songs from a playlist in one playlist.deleteSongs call.
func (d *DeezerService) RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return fmt.Errorf("%w: no track IDs provided", shared.ErrInvalidArgument)
	}

	pid, err := strconv.ParseInt(playlistID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: playlist id %q is not numeric", shared.ErrInvalidArgument, playlistID)
	}

	songs := make([][2]int64, 0, len(trackIDs))
	for _, id := range trackIDs {
		sid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: track id %q is not numeric", shared.ErrInvalidArgument, id)
		}
		songs = append(songs, [2]int64{sid, 0})
	}

	body := map[string]any{
		"playlist_id": playlistID,
		"songs":       songs,
		"ctxt": map[string]any{
			"id": pid,
			"t":  "playlist_page",
		},
	}

	return d.call(ctx, methodDeleteSongs, body, nil)
}

// Call invokes an arbitrary gw-light method and returns the raw results payload.
func (d *DeezerService) Call(ctx context.Context, method string, body json.RawMessage) (json.RawMessage, error) {
	var payload any
	if len(body) > 0 {
		payload = body
	}

	var raw json.RawMessage
	if err := d.call(ctx, method, payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// call performs a gw-light request and decodes the results object into result.
func (d *DeezerService) call(ctx context.Context, method string, body, result any) error {
	d.mu.RLock()
	sid, token := d.sid, d.apiToken
	d.mu.RUnlock()

	if sid == "" {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("method", method)
	q.Set("input", "3")
	q.Set("api_version", "1.0")
	q.Set("api_token", token)
	apiURL := d.baseURL + gwLightPath + "?" + q.Encode()

	httpMethod := http.MethodGet
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		httpMethod = http.MethodPost
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned status %d", shared.ErrAPIRequest, method, resp.StatusCode)
	}

	var envelope gwResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.failed() {
		return fmt.Errorf("%w: %s: %s", shared.ErrAPIRequest, method, string(envelope.Error))
	}

	if result != nil && len(envelope.Results) > 0 {
		if err := json.Unmarshal(envelope.Results, result); err != nil {
			return fmt.Errorf("failed to decode %s results: %w", method, err)
		}
	}

	return nil
}
