package models

import (
	"errors"
	"testing"

	"photoserver/db"
)

func shareCount(photoID, userID uint64) int64 {
	var count int64
	db.Instance.Model(&PhotoShare{}).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Count(&count)
	return count
}

func TestShareWithSelfRejected(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice", "alice@example.com")
	photo := createTestPhoto(t, &alice, "uploads/x.jpg")

	// Email matching is case-insensitive
	for _, email := range []string{"alice@example.com", "Alice@Example.COM"} {
		_, err := SharePhoto(&alice, photo.ID, email)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("share to %s: err = %v, want ValidationError", email, err)
		}
		if validationErr.Reason != "cannot share with self" {
			t.Errorf("share to %s: reason = %q", email, validationErr.Reason)
		}
	}
}

func TestShareWithUnknownEmailRejected(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice", "alice@example.com")
	photo := createTestPhoto(t, &alice, "uploads/x.jpg")

	_, err := SharePhoto(&alice, photo.ID, "nobody@example.com")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if validationErr.Reason != "no such user" {
		t.Errorf("reason = %q", validationErr.Reason)
	}
}

func TestShareTwiceRejected(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")
	photo := createTestPhoto(t, &alice, "uploads/x.jpg")

	if _, err := SharePhoto(&alice, photo.ID, bob.Email); err != nil {
		t.Fatalf("first share: %v", err)
	}
	_, err := SharePhoto(&alice, photo.ID, bob.Email)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("second share: err = %v, want ValidationError", err)
	}
	if validationErr.Reason != "already shared" {
		t.Errorf("second share: reason = %q", validationErr.Reason)
	}
	if got := shareCount(photo.ID, bob.ID); got != 1 {
		t.Errorf("grant count = %d, want 1", got)
	}
}

// A non-owner must get the same answer whether the photo exists or not.
func TestShareByNonOwnerReadsAsNotFound(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")
	carol := createTestUser(t, "carol", "carol@example.com")
	photo := createTestPhoto(t, &alice, "uploads/x.jpg")

	if _, err := SharePhoto(&bob, photo.ID, carol.Email); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign photo: err = %v, want ErrNotFound", err)
	}
	if _, err := SharePhoto(&bob, 99999, carol.Email); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing photo: err = %v, want ErrNotFound", err)
	}
}

// A grant gives read access only - the grantee cannot pass it on.
func TestGranteeCannotReshare(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")
	carol := createTestUser(t, "carol", "carol@example.com")
	photo := createTestPhoto(t, &alice, "uploads/x.jpg")

	if _, err := SharePhoto(&alice, photo.ID, bob.Email); err != nil {
		t.Fatalf("SharePhoto: %v", err)
	}
	if _, err := SharePhoto(&bob, photo.ID, carol.Email); !errors.Is(err, ErrNotFound) {
		t.Errorf("reshare by grantee: err = %v, want ErrNotFound", err)
	}
	if photo.CanRead(carol.ID) {
		t.Error("carol gained read access through a grantee")
	}
}
