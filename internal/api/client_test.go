package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	"github.com/julianstephens/habitdash/internal/models"
)

func newBackend(t *testing.T, register func(r *mux.Router)) *Client {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8000///")
	if c.BaseURL() != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}

func TestListHabits(t *testing.T) {
	c := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/habits/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[
				{"id":"1","name":"Read","emoji":"📚","habit_type":"time","active":true,"order":0,
				 "is_personal":false,"current_streak":3,"best_streak":5,"completed_today":true,
				 "last_completion_date":"2026-10-18"}
			]`)
		}).Methods(http.MethodGet)
	})

	habits, err := c.ListHabits(context.Background())
	if err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	date := "2026-10-18"
	want := []models.Habit{{
		ID: "1", Name: "Read", Emoji: "📚", HabitType: models.HabitTypeTime, Active: true,
		CurrentStreak: 3, BestStreak: 5, CompletedToday: true, LastCompletionDate: &date,
	}}
	if diff := cmp.Diff(want, habits); diff != "" {
		t.Errorf("ListHabits() mismatch (-want +got):\n%s", diff)
	}
}

func TestListHabits_InvalidShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"null", `null`},
		{"object instead of array", `{"habits":[]}`},
		{"unknown habit type", `[{"id":"1","habit_type":"counter"}]`},
		{"missing id", `[{"habit_type":"binary"}]`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newBackend(t, func(r *mux.Router) {
				r.HandleFunc("/api/habits/", func(w http.ResponseWriter, _ *http.Request) {
					_, _ = io.WriteString(w, tt.body)
				})
			})
			_, err := c.ListHabits(context.Background())
			if !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("ListHabits() error = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestListHabits_EmptyArray(t *testing.T) {
	c := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/habits/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		})
	})
	habits, err := c.ListHabits(context.Background())
	if err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	if habits == nil || len(habits) != 0 {
		t.Errorf("ListHabits() = %#v, want empty non-nil slice", habits)
	}
}

func TestHTTPError(t *testing.T) {
	c := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/habits/", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "database locked", http.StatusInternalServerError)
		})
	})

	_, err := c.ListHabits(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
	if got, want := err.Error(), "Backend API error (500): Internal Server Error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if httpErr.Body != "database locked" {
		t.Errorf("Body = %q", httpErr.Body)
	}
	if errors.Is(err, ErrUnreachable) {
		t.Error("HTTP failure must not match ErrUnreachable")
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base)
	_, err := c.ListHabits(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error = %v, want ErrUnreachable", err)
	}
	want := "Cannot connect to backend API at " + base + ". Check if backend is running and accessible."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	var unreachable *UnreachableError
	if !errors.As(err, &unreachable) || unreachable.Hint() == "" {
		t.Error("UnreachableError should carry a hint")
	}
}

func TestRefreshHabits(t *testing.T) {
	t.Run("with body", func(t *testing.T) {
		c := newBackend(t, func(r *mux.Router) {
			r.HandleFunc("/api/habits/refresh", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, map[string]any{"message": "recomputed", "count": 4})
			}).Methods(http.MethodGet)
		})
		res, err := c.RefreshHabits(context.Background())
		if err != nil {
			t.Fatalf("RefreshHabits() error = %v", err)
		}
		if res.Message != "recomputed" || res.Count != 4 {
			t.Errorf("RefreshHabits() = %+v", res)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		c := newBackend(t, func(r *mux.Router) {
			r.HandleFunc("/api/habits/refresh", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
		if _, err := c.RefreshHabits(context.Background()); err != nil {
			t.Errorf("RefreshHabits() error = %v", err)
		}
	})
}

func TestHabitMutations(t *testing.T) {
	var calls []string
	var updateBody string

	c := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/habits/{id}", func(w http.ResponseWriter, req *http.Request) {
			calls = append(calls, req.Method+" "+mux.Vars(req)["id"])
			data, _ := io.ReadAll(req.Body)
			updateBody = string(data)
			writeJSON(w, map[string]string{"status": "ok"})
		}).Methods(http.MethodPut)
		r.HandleFunc("/api/habits/{id}", func(w http.ResponseWriter, req *http.Request) {
			calls = append(calls, req.Method+" "+mux.Vars(req)["id"])
			w.WriteHeader(http.StatusNoContent)
		}).Methods(http.MethodDelete)
		r.HandleFunc("/api/habits/{id}/restore", func(w http.ResponseWriter, req *http.Request) {
			calls = append(calls, req.Method+" "+mux.Vars(req)["id"]+"/restore")
		}).Methods(http.MethodPost)
	})

	ctx := context.Background()
	personal := true
	if err := c.UpdateHabit(ctx, "h1", models.HabitUpdate{IsPersonal: &personal}); err != nil {
		t.Fatalf("UpdateHabit() error = %v", err)
	}
	if err := c.HideHabit(ctx, "h1"); err != nil {
		t.Fatalf("HideHabit() error = %v", err)
	}
	if err := c.RestoreHabit(ctx, "h1"); err != nil {
		t.Fatalf("RestoreHabit() error = %v", err)
	}

	want := []string{"PUT h1", "DELETE h1", "POST h1/restore"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if strings.TrimSpace(updateBody) != `{"is_personal":true}` {
		t.Errorf("update body = %q, want only is_personal", updateBody)
	}
}

func TestUpdateHabit_RejectsEmptyUpdate(t *testing.T) {
	c := New("http://127.0.0.1:1")
	if err := c.UpdateHabit(context.Background(), "h1", models.HabitUpdate{}); err == nil {
		t.Error("UpdateHabit() with no fields should fail before sending")
	}
	if err := c.HideHabit(context.Background(), ""); err == nil {
		t.Error("HideHabit(\"\") should fail")
	}
}

func TestHideHabit_NotFound(t *testing.T) {
	c := newBackend(t, func(r *mux.Router) {})
	err := c.HideHabit(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("HideHabit() error = %v, want 404", err)
	}
}

func TestListHiddenHabits(t *testing.T) {
	c := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/habits/hidden", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[{"id":"9","name":"Floss","emoji":"🦷"}]`)
		}).Methods(http.MethodGet)
	})
	hidden, err := c.ListHiddenHabits(context.Background())
	if err != nil {
		t.Fatalf("ListHiddenHabits() error = %v", err)
	}
	if len(hidden) != 1 || hidden[0].Name != "Floss" {
		t.Errorf("ListHiddenHabits() = %+v", hidden)
	}
}

func newBackendWithOptions(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}
