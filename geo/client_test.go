package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(overpass, nominatim string) *Client {
	return NewClient(Options{
		OverpassURL:  overpass,
		NominatimURL: nominatim,
		Timeout:      500 * time.Millisecond,
	})
}

func TestDiscoverRestaurants_ParsesOverpass(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = r.ParseForm()
		gotQuery = r.PostForm.Get("data")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"elements":[
			{"id":1,"lat":17.44,"lon":78.35,"tags":{"name":"Shah Ghouse"}},
			{"id":42,"lat":17.45,"lon":78.36,"tags":{}}
		]}`)
	}))
	defer srv.Close()

	got := newTestClient(srv.URL, "").DiscoverRestaurants(context.Background(), 17.385, 78.4867)

	if len(got) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(got))
	}
	if got[0].Name != "Shah Ghouse" || got[0].Lat != 17.44 || got[0].Lon != 78.35 {
		t.Fatalf("unexpected first restaurant: %+v", got[0])
	}
	if got[1].Name != "Rest_42" {
		t.Fatalf("expected unnamed node to be called Rest_42, got %q", got[1].Name)
	}
	want := "[out:json];node['amenity'='restaurant'](around:5000,17.385,78.4867);out body;"
	if gotQuery != want {
		t.Fatalf("unexpected overpass query:\n got %s\nwant %s", gotQuery, want)
	}
	if gotAgent != "FoodieRide" {
		t.Fatalf("unexpected user agent %q", gotAgent)
	}
}

func TestDiscoverRestaurants_CapsAtTen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var parts []string
		for i := 0; i < 25; i++ {
			parts = append(parts, fmt.Sprintf(`{"id":%d,"lat":17.4,"lon":78.4,"tags":{"name":"R%d"}}`, i, i))
		}
		fmt.Fprintf(w, `{"elements":[%s]}`, strings.Join(parts, ","))
	}))
	defer srv.Close()

	got := newTestClient(srv.URL, "").DiscoverRestaurants(context.Background(), DefaultLat, DefaultLon)
	if len(got) != MaxRestaurants {
		t.Fatalf("expected %d restaurants, got %d", MaxRestaurants, len(got))
	}
	if got[9].Name != "R9" {
		t.Fatalf("expected the first ten in order, last was %q", got[9].Name)
	}
}

func TestDiscoverRestaurants_Fallbacks(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"empty": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"elements":[]}`)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>rate limited</html>`)
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			got := newTestClient(srv.URL, "").DiscoverRestaurants(context.Background(), DefaultLat, DefaultLon)
			assertFallback(t, got)
		})
	}
}

func TestDiscoverRestaurants_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assertFallback(t, newTestClient(url, "").DiscoverRestaurants(context.Background(), DefaultLat, DefaultLon))
}

func TestFallbackRestaurants_ReturnsCopy(t *testing.T) {
	list := FallbackRestaurants()
	list[0].Name = "changed"
	if FallbackRestaurants()[0].Name != "Paradise Biryani" {
		t.Fatalf("fallback list must not be mutable through returned slice")
	}
}

func TestResolveAddress_ParsesFirstHit(t *testing.T) {
	var gotQ, gotFormat, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `[{"lat":"17.4401","lon":"78.3489"},{"lat":"1","lon":"2"}]`)
	}))
	defer srv.Close()

	lat, lon := newTestClient("", srv.URL).ResolveAddress(context.Background(), "Gachibowli")
	if lat != 17.4401 || lon != 78.3489 {
		t.Fatalf("unexpected coordinates %v,%v", lat, lon)
	}
	if gotQ != "Gachibowli" || gotFormat != "json" || gotAgent != "FoodieRide" {
		t.Fatalf("unexpected request q=%q format=%q agent=%q", gotQ, gotFormat, gotAgent)
	}
}

func TestResolveAddress_Fallbacks(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"no hits": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		},
		"bad number": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"lat":"north","lon":"78.1"}]`)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			lat, lon := newTestClient("", srv.URL).ResolveAddress(context.Background(), "Nowhere")
			if lat != DefaultLat || lon != DefaultLon {
				t.Fatalf("expected default coordinates, got %v,%v", lat, lon)
			}
		})
	}
}

func TestResolveAddress_CustomDefault(t *testing.T) {
	c := NewClient(Options{NominatimURL: "http://127.0.0.1:0", DefaultLat: 12.97, DefaultLon: 77.59, Timeout: 200 * time.Millisecond})
	lat, lon := c.ResolveAddress(context.Background(), "anywhere")
	if lat != 12.97 || lon != 77.59 {
		t.Fatalf("expected configured default, got %v,%v", lat, lon)
	}
}

func assertFallback(t *testing.T, got []Restaurant) {
	t.Helper()
	if len(got) != 3 {
		t.Fatalf("expected 3 fallback restaurants, got %d: %+v", len(got), got)
	}
	want := []string{"Paradise Biryani", "Bawarchi", "Jewel of Nizam"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("fallback[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}
