// Package reconcile decides, for each inbound structured event, whether it
// updates an existing trip entity or creates a new one, how partial fields
// merge, and how cancellations unwind prior itinerary placements.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/google/uuid"
)

// DayLinker is the itinerary-linking step invoked after an entity changes.
type DayLinker interface {
	LinkPOI(ctx context.Context, poi *types.POI) error
	UnlinkPOI(ctx context.Context, tripID, poiID string) error
	LinkTransportation(ctx context.Context, tr *types.Transportation) error
	UnlinkTransportation(ctx context.Context, tripID, transportationID string) error
}

// Reconciler applies one inbound event to a trip's entities.
type Reconciler struct {
	pois       store.POIStore
	transports store.TransportationStore
	contacts   store.ContactStore
	linker     DayLinker
}

// NewReconciler creates an entity reconciler.
func NewReconciler(
	pois store.POIStore,
	transports store.TransportationStore,
	contacts store.ContactStore,
	linker DayLinker,
) *Reconciler {
	return &Reconciler{
		pois:       pois,
		transports: transports,
		contacts:   contacts,
		linker:     linker,
	}
}

// Reconcile applies the event to the trip and returns the audit records of
// what happened. Geo references, advisory tips and unclassifiable tags are
// skipped silently; cancelling something never seen is a no-op.
func (r *Reconciler) Reconcile(ctx context.Context, tripID string, ev types.SourceEvent) ([]types.LinkedEntity, error) {
	log := logger.GetLogger()

	if ev.Action == types.ActionCancel {
		return r.cancel(ctx, tripID, ev)
	}

	class := Classify(ev.TypeTag)
	switch class.Kind {
	case ClassGeo, ClassTip:
		log.Debugw("Skipping non-entity tag", "tag", ev.TypeTag, "tripID", tripID)
		return nil, nil
	case ClassUnknown:
		log.Debugw("Skipping unclassified tag", "tag", ev.TypeTag, "tripID", tripID)
		return nil, nil
	}

	switch class.Category {
	case types.CategoryContact:
		return r.reconcileContact(ctx, tripID, ev)
	case types.CategoryTransportation:
		return r.reconcileTransportation(ctx, tripID, ev)
	default:
		return r.reconcilePOI(ctx, tripID, ev, class.Category)
	}
}

// cancel flips isCancelled on the entity matching the event's business key and
// unwinds its day placements. The lookup is by business key only: a
// cancellation without a confirmation number can never find its target, so it
// is logged and dropped.
func (r *Reconciler) cancel(ctx context.Context, tripID string, ev types.SourceEvent) ([]types.LinkedEntity, error) {
	log := logger.GetLogger()

	if ev.BusinessKey == "" {
		log.Warnw("Cancellation without business key, nothing to match",
			"tripID", tripID, "tag", ev.TypeTag, "event", ev.ProvenanceID)
		return nil, nil
	}

	class := Classify(ev.TypeTag)
	if class.Kind != ClassEntity {
		log.Debugw("Cancellation for non-entity tag, skipping", "tag", ev.TypeTag)
		return nil, nil
	}

	if class.Category == types.CategoryTransportation {
		tr, err := r.transports.FindTransportationByOrderNumber(ctx, tripID, ev.BusinessKey)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Infow("Cancellation target not found", "tripID", tripID, "businessKey", ev.BusinessKey)
				return nil, nil
			}
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.transports.SetTransportationCancelled(ctx, tr.ID); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.transports.AppendTransportationSourceRef(ctx, tr.ID, refFieldFor(ev.Kind), ev.ProvenanceID); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.linker.UnlinkTransportation(ctx, tripID, tr.ID); err != nil {
			return nil, err
		}
		return []types.LinkedEntity{{
			EntityType:      types.LinkedTransportation,
			EntityID:        tr.ID,
			Description:     fmt.Sprintf("cancelled %s booking %s", tr.Mode, ev.BusinessKey),
			MatchedExisting: true,
		}}, nil
	}

	poi, err := r.pois.FindPOIByOrderNumber(ctx, tripID, class.Category, ev.BusinessKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Infow("Cancellation target not found", "tripID", tripID, "businessKey", ev.BusinessKey)
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := r.pois.SetPOICancelled(ctx, poi.ID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := r.pois.AppendPOISourceRef(ctx, poi.ID, refFieldFor(ev.Kind), ev.ProvenanceID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := r.linker.UnlinkPOI(ctx, tripID, poi.ID); err != nil {
		return nil, err
	}
	return []types.LinkedEntity{{
		EntityType:      types.LinkedPOI,
		EntityID:        poi.ID,
		Description:     fmt.Sprintf("cancelled %s", poi.Name),
		MatchedExisting: true,
	}}, nil
}

func (r *Reconciler) reconcilePOI(ctx context.Context, tripID string, ev types.SourceEvent, category types.EntityCategory) ([]types.LinkedEntity, error) {
	log := logger.GetLogger()
	loc := resolveLocation(ev)

	existing, err := r.findPOI(ctx, tripID, ev, category, loc)
	if err != nil {
		return nil, err
	}

	payload := clonePayload(ev.Payload)
	if ev.BusinessKey != "" {
		payload[types.DetailOrderNumber] = ev.BusinessKey
	}

	if existing != nil {
		existing.Details = MergeDocuments(existing.Details, payload)
		if loc != nil {
			locDoc, derr := ToDocument(*loc)
			if derr != nil {
				return nil, apperrors.Wrap(derr, apperrors.ServerError, "failed to encode location")
			}
			var mergedLoc types.Location
			if merr := MergeInto(existing.Location, locDoc, &mergedLoc); merr != nil {
				return nil, apperrors.Wrap(merr, apperrors.ServerError, "failed to merge location")
			}
			existing.Location = mergedLoc
		}
		// An incoming payload without a name never erases the known one.
		if ev.Name != "" {
			existing.Name = ev.Name
		}
		if ev.TypeTag != "" {
			existing.SubCategory = ev.TypeTag
		}

		if err := r.pois.UpdatePOI(ctx, existing); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.pois.AppendPOISourceRef(ctx, existing.ID, refFieldFor(ev.Kind), ev.ProvenanceID); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		// A merge may change check-in/out or booking dates: unlink old
		// placements, relink from the merged fields.
		if err := r.linker.UnlinkPOI(ctx, tripID, existing.ID); err != nil {
			return nil, err
		}
		if err := r.linker.LinkPOI(ctx, existing); err != nil {
			return nil, err
		}
		log.Infow("Merged event into existing POI", "poiID", existing.ID, "event", ev.ProvenanceID)
		return []types.LinkedEntity{{
			EntityType:      types.LinkedPOI,
			EntityID:        existing.ID,
			Description:     fmt.Sprintf("updated %s", existing.Name),
			MatchedExisting: true,
		}}, nil
	}

	poi := &types.POI{
		ID:          uuid.New().String(),
		TripID:      tripID,
		Category:    category,
		SubCategory: ev.TypeTag,
		Name:        ev.Name,
		Status:      defaultStatus(ev.Kind),
		Details:     payload,
	}
	if loc != nil {
		poi.Location = *loc
	}
	seedSourceRef(&poi.SourceRefs, ev)

	if err := r.pois.CreatePOI(ctx, poi); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := r.linker.LinkPOI(ctx, poi); err != nil {
		return nil, err
	}
	log.Infow("Created POI from event", "poiID", poi.ID, "category", category, "event", ev.ProvenanceID)
	return []types.LinkedEntity{{
		EntityType:  types.LinkedPOI,
		EntityID:    poi.ID,
		Description: fmt.Sprintf("created %s", describeName(poi.Name, string(category))),
	}}, nil
}

// findPOI looks up an existing entity by business key, falling back to fuzzy
// name matching within the category. Location agreement is only required when
// both sides carry one.
func (r *Reconciler) findPOI(ctx context.Context, tripID string, ev types.SourceEvent, category types.EntityCategory, loc *types.Location) (*types.POI, error) {
	if ev.BusinessKey != "" {
		poi, err := r.pois.FindPOIByOrderNumber(ctx, tripID, category, ev.BusinessKey)
		if err == nil {
			return poi, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewDatabaseError(err)
		}
		return nil, nil
	}

	if ev.Name == "" {
		return nil, nil
	}
	candidates, err := r.pois.ListPOIsByCategory(ctx, tripID, category)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	for _, candidate := range candidates {
		if !FuzzyMatch(candidate.Name, ev.Name) {
			continue
		}
		if loc != nil && !locationAgrees(candidate.Location, *loc) {
			continue
		}
		return candidate, nil
	}
	return nil, nil
}

func (r *Reconciler) reconcileTransportation(ctx context.Context, tripID string, ev types.SourceEvent) ([]types.LinkedEntity, error) {
	log := logger.GetLogger()

	payload := clonePayload(ev.Payload)
	ensureSegmentIDs(payload)
	if ev.BusinessKey != "" {
		booking, _ := payload["booking"].(map[string]any)
		if booking == nil {
			booking = map[string]any{}
		}
		booking["orderNumber"] = ev.BusinessKey
		payload["booking"] = booking
	}

	existing, err := r.findTransportation(ctx, tripID, ev, payload)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		var merged types.Transportation
		if merr := MergeInto(existing, payload, &merged); merr != nil {
			return nil, apperrors.Wrap(merr, apperrors.ServerError, "failed to merge transportation")
		}
		merged.ID = existing.ID
		merged.TripID = existing.TripID
		merged.SourceRefs = existing.SourceRefs

		if err := r.transports.UpdateTransportation(ctx, &merged); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.transports.AppendTransportationSourceRef(ctx, merged.ID, refFieldFor(ev.Kind), ev.ProvenanceID); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.linker.UnlinkTransportation(ctx, tripID, merged.ID); err != nil {
			return nil, err
		}
		if err := r.linker.LinkTransportation(ctx, &merged); err != nil {
			return nil, err
		}
		log.Infow("Merged event into existing transportation", "transportationID", merged.ID, "event", ev.ProvenanceID)
		return []types.LinkedEntity{{
			EntityType:      types.LinkedTransportation,
			EntityID:        merged.ID,
			Description:     fmt.Sprintf("updated %s booking", merged.Mode),
			MatchedExisting: true,
		}}, nil
	}

	tr := &types.Transportation{}
	if err := FromDocument(payload, tr); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ValidationError, "malformed transportation payload")
	}
	tr.ID = uuid.New().String()
	tr.TripID = tripID
	tr.Mode = types.ParseTransportMode(ev.TypeTag)
	tr.Status = defaultStatus(ev.Kind)
	seedSourceRef(&tr.SourceRefs, ev)

	if err := r.transports.CreateTransportation(ctx, tr); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := r.linker.LinkTransportation(ctx, tr); err != nil {
		return nil, err
	}
	log.Infow("Created transportation from event", "transportationID", tr.ID, "mode", tr.Mode, "event", ev.ProvenanceID)
	return []types.LinkedEntity{{
		EntityType:  types.LinkedTransportation,
		EntityID:    tr.ID,
		Description: fmt.Sprintf("created %s booking", tr.Mode),
	}}, nil
}

func (r *Reconciler) findTransportation(ctx context.Context, tripID string, ev types.SourceEvent, payload map[string]any) (*types.Transportation, error) {
	if ev.BusinessKey != "" {
		tr, err := r.transports.FindTransportationByOrderNumber(ctx, tripID, ev.BusinessKey)
		if err == nil {
			return tr, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewDatabaseError(err)
		}
		return nil, nil
	}

	carrier := ev.Name
	if carrier == "" {
		if booking, ok := payload["booking"].(map[string]any); ok {
			carrier, _ = booking["carrierName"].(string)
		}
	}
	if carrier == "" {
		return nil, nil
	}
	candidates, err := r.transports.ListTransportationsByTrip(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	mode := types.ParseTransportMode(ev.TypeTag)
	for _, candidate := range candidates {
		if candidate.Mode != mode {
			continue
		}
		if FuzzyMatch(candidate.Booking.CarrierName, carrier) {
			return candidate, nil
		}
	}
	return nil, nil
}

func (r *Reconciler) reconcileContact(ctx context.Context, tripID string, ev types.SourceEvent) ([]types.LinkedEntity, error) {
	log := logger.GetLogger()

	name := ev.Name
	if name == "" {
		name, _ = ev.Payload["name"].(string)
	}
	if name == "" {
		log.Debugw("Contact without a name, skipping", "event", ev.ProvenanceID)
		return nil, nil
	}

	contacts, err := r.contacts.ListContactsByTrip(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	phone, _ := ev.Payload["phone"].(string)
	email, _ := ev.Payload["email"].(string)
	notes, _ := ev.Payload["notes"].(string)

	for _, existing := range contacts {
		if !FuzzyMatch(existing.Name, name) {
			continue
		}
		if phone != "" {
			existing.Phone = phone
		}
		if email != "" {
			existing.Email = email
		}
		if notes != "" {
			existing.Notes = notes
		}
		if err := r.contacts.UpdateContact(ctx, existing); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if err := r.contacts.AppendContactSourceRef(ctx, existing.ID, refFieldFor(ev.Kind), ev.ProvenanceID); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		return []types.LinkedEntity{{
			EntityType:      types.LinkedContact,
			EntityID:        existing.ID,
			Description:     fmt.Sprintf("updated contact %s", existing.Name),
			MatchedExisting: true,
		}}, nil
	}

	contact := &types.Contact{
		ID:     uuid.New().String(),
		TripID: tripID,
		Name:   name,
		Phone:  phone,
		Email:  email,
		Notes:  notes,
	}
	seedSourceRef(&contact.SourceRefs, ev)
	if err := r.contacts.CreateContact(ctx, contact); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return []types.LinkedEntity{{
		EntityType:  types.LinkedContact,
		EntityID:    contact.ID,
		Description: fmt.Sprintf("created contact %s", contact.Name),
	}}, nil
}

// resolveLocation returns the event's explicit location enriched from the geo
// hierarchy: city/country fall back to the hierarchy's city- and country-typed
// entries when absent. Returns nil when nothing is known.
func resolveLocation(ev types.SourceEvent) *types.Location {
	var loc types.Location
	if ev.Location != nil {
		loc = *ev.Location
	}
	for _, level := range ev.GeoHierarchy {
		switch level.Type {
		case "country":
			if loc.Country == "" {
				loc.Country = level.Name
			}
		case "city", "town", "village":
			if loc.City == "" {
				loc.City = level.Name
			}
		}
	}
	if loc.IsEmpty() {
		return nil
	}
	return &loc
}

// locationAgrees applies the fuzzy location check: agreement is required only
// when both sides carry location data, and any city/country overlap counts.
func locationAgrees(a, b types.Location) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return true
	}
	if a.City != "" && b.City != "" {
		return FuzzyMatch(a.City, b.City)
	}
	if a.Country != "" && b.Country != "" {
		return FuzzyMatch(a.Country, b.Country)
	}
	return true
}

func defaultStatus(kind types.EventKind) types.EntityStatus {
	// Confirmed bookings are facts; recommendations are suggestions.
	if kind == types.KindParsedEmail {
		return types.StatusBooked
	}
	return types.StatusCandidate
}

func refFieldFor(kind types.EventKind) store.RefField {
	if kind == types.KindParsedEmail {
		return store.RefEmails
	}
	return store.RefRecommendations
}

func seedSourceRef(refs *types.SourceRefs, ev types.SourceEvent) {
	if ev.Kind == types.KindParsedEmail {
		refs.AddEmailID(ev.ProvenanceID)
	} else {
		refs.AddRecommendationID(ev.ProvenanceID)
	}
}

func clonePayload(payload map[string]any) map[string]any {
	cloned := make(map[string]any, len(payload))
	for k, v := range payload {
		cloned[k] = v
	}
	return cloned
}

// ensureSegmentIDs assigns ids to incoming segments that lack one, so day
// links can reference (transportationId, segmentId) pairs stably. The segment
// maps are copied before assignment; the caller's payload stays untouched.
func ensureSegmentIDs(payload map[string]any) {
	segments, ok := payload["segments"].([]any)
	if !ok {
		return
	}
	copied := make([]any, len(segments))
	for i, entry := range segments {
		seg, ok := entry.(map[string]any)
		if !ok {
			copied[i] = entry
			continue
		}
		clone := make(map[string]any, len(seg))
		for k, v := range seg {
			clone[k] = v
		}
		if id, _ := clone["id"].(string); id == "" {
			clone["id"] = uuid.New().String()
		}
		copied[i] = clone
	}
	payload["segments"] = copied
}

func describeName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
