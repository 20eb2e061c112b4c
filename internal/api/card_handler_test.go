package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/store"
)

func TestCreateCardHandler(t *testing.T) {
	t.Parallel()

	t.Run("valid request creates the card", func(t *testing.T) {
		card := testCard()
		svc := &stubStudyService{card: card}
		handler := NewCardHandler(svc, testLogger())

		body, _ := json.Marshal(CreateCardRequest{
			Original:    "perro",
			Translation: "dog",
			SourceLang:  "es",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/cards", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.CreateCard(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp CardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, card.ID.String(), resp.ID)
		assert.Equal(t, "dog", resp.Translation)
	})

	t.Run("missing translation fails validation", func(t *testing.T) {
		svc := &stubStudyService{}
		handler := NewCardHandler(svc, testLogger())

		body, _ := json.Marshal(CreateCardRequest{Original: "perro"})
		req := httptest.NewRequest(http.MethodPost, "/api/cards", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.CreateCard(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed JSON maps to 400", func(t *testing.T) {
		svc := &stubStudyService{}
		handler := NewCardHandler(svc, testLogger())

		req := httptest.NewRequest(
			http.MethodPost, "/api/cards", strings.NewReader("not json"))
		w := httptest.NewRecorder()
		handler.CreateCard(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListCardsHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns the full collection", func(t *testing.T) {
		svc := &stubStudyService{cards: []*domain.Card{testCard(), testCard()}}
		handler := NewCardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
		w := httptest.NewRecorder()
		handler.ListCards(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []CardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("empty collection yields an empty array", func(t *testing.T) {
		svc := &stubStudyService{}
		handler := NewCardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
		w := httptest.NewRecorder()
		handler.ListCards(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})
}

func TestGetCardHandler(t *testing.T) {
	t.Parallel()

	// chi router so the {id} URL parameter resolves.
	newGetRequest := func(handler *CardHandler, id string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Get("/api/cards/{id}", handler.GetCard)

		req := httptest.NewRequest(http.MethodGet, "/api/cards/"+id, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("existing card is returned in full", func(t *testing.T) {
		card := testCard()
		svc := &stubStudyService{card: card}
		handler := NewCardHandler(svc, testLogger())

		w := newGetRequest(handler, card.ID.String())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, card.ID, svc.requestedID)

		var resp CardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, card.ID.String(), resp.ID)
		assert.Equal(t, card.Translation, resp.Translation)
	})

	t.Run("unknown card maps to 404", func(t *testing.T) {
		svc := &stubStudyService{err: store.ErrCardNotFound}
		handler := NewCardHandler(svc, testLogger())

		w := newGetRequest(handler, uuid.NewString())

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid UUID maps to 400", func(t *testing.T) {
		svc := &stubStudyService{}
		handler := NewCardHandler(svc, testLogger())

		w := newGetRequest(handler, "not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, uuid.Nil, svc.requestedID)
	})
}

func TestDeleteCardHandler(t *testing.T) {
	t.Parallel()

	// chi router so the {id} URL parameter resolves.
	newDeleteRequest := func(handler *CardHandler, id string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Delete("/api/cards/{id}", handler.DeleteCard)

		req := httptest.NewRequest(http.MethodDelete, "/api/cards/"+id, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("existing card is deleted", func(t *testing.T) {
		svc := &stubStudyService{}
		handler := NewCardHandler(svc, testLogger())

		id := uuid.New()
		w := newDeleteRequest(handler, id.String())

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, id, svc.deletedID)
	})

	t.Run("invalid UUID maps to 400", func(t *testing.T) {
		svc := &stubStudyService{}
		handler := NewCardHandler(svc, testLogger())

		w := newDeleteRequest(handler, "not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, uuid.Nil, svc.deletedID)
	})

	t.Run("unknown card maps to 404", func(t *testing.T) {
		svc := &stubStudyService{err: store.ErrCardNotFound}
		handler := NewCardHandler(svc, testLogger())

		w := newDeleteRequest(handler, uuid.NewString())

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
