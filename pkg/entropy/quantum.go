package entropy

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rayozzie/tumbler/pkg/trace"
)

// quantumEnabledKey is the context key controlling quantum entropy use.
type quantumEnabledKey struct{}

// WithQuantumEnabled returns a context in which the quantum entropy
// source participates in NewDefaultSource.
func WithQuantumEnabled(ctx context.Context) context.Context {
	return context.WithValue(ctx, quantumEnabledKey{}, true)
}

// IsQuantumEnabled reports whether quantum entropy is enabled in the
// context.
func IsQuantumEnabled(ctx context.Context) bool {
	enabled, ok := ctx.Value(quantumEnabledKey{}).(bool)
	return ok && enabled
}

const (
	// quantumAPIURL is the ANU quantum random number service endpoint.
	quantumAPIURL = "https://qrng.anu.edu.au/API/jsonI.php"

	// quantumCacheSize caps how many fetched bytes are held locally.
	quantumCacheSize = 8192

	// quantumRequestSize caps how many bytes one API call may request.
	quantumRequestSize = 1024
)

// QuantumSource draws words from the ANU quantum random number API,
// caching fetched bytes so that most draws are served locally. When the
// API is unreachable the draw falls back to crypto/rand instead of
// failing, since connectivity must never stall engine keying.
type QuantumSource struct {
	apiURL   string
	client   *http.Client
	fallback *CryptoSource

	lock  sync.Mutex
	cache []byte
}

// NewQuantumSource creates a quantum entropy source talking to the ANU
// service.
func NewQuantumSource() *QuantumSource {
	return &QuantumSource{
		apiURL:   quantumAPIURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		fallback: NewCryptoSource(),
	}
}

// quantumResponse is the JSON shape the ANU service returns.
type quantumResponse struct {
	Type    string `json:"type"`
	Length  int    `json:"length"`
	Data    []int  `json:"data"`
	Success bool   `json:"success"`
}

// refillCache tops up the byte cache with one API request. Caller must
// hold the lock.
func (s *QuantumSource) refillCache(ctx context.Context) error {
	log := trace.FromContext(ctx).WithPrefix("QUANTUM-ENTROPY")

	need := quantumCacheSize - len(s.cache)
	if need > quantumRequestSize {
		need = quantumRequestSize
	}
	log.Debugf("Requesting %d bytes from quantum API", need)

	url := fmt.Sprintf("%s?length=%d&type=uint8", s.apiURL, need)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("quantum request: %w", err)
	}
	req.Header.Set("User-Agent", "tumbler/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("quantum API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quantum API returned status %d", resp.StatusCode)
	}

	var qr quantumResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return fmt.Errorf("quantum API response: %w", err)
	}
	if !qr.Success {
		return fmt.Errorf("quantum API reported failure")
	}
	if qr.Type != "uint8" {
		return fmt.Errorf("quantum API returned unexpected type %q", qr.Type)
	}
	if len(qr.Data) == 0 {
		return fmt.Errorf("quantum API returned no data")
	}

	for _, v := range qr.Data {
		s.cache = append(s.cache, byte(v))
	}
	log.Debugf("Quantum cache now holds %d bytes", len(s.cache))
	return nil
}

// Word32 draws one word from the quantum byte cache, refilling from the
// API as needed.
func (s *QuantumSource) Word32(ctx context.Context) (uint32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for len(s.cache) < 4 {
		if err := s.refillCache(ctx); err != nil {
			log := trace.FromContext(ctx).WithPrefix("QUANTUM-ENTROPY")
			log.Warnf("Quantum API unavailable, falling back to crypto/rand: %v", err)
			return s.fallback.Word32(ctx)
		}
	}

	w := binary.LittleEndian.Uint32(s.cache[:4])
	s.cache = s.cache[4:]
	return w, nil
}
