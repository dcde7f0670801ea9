package querycache

import "strings"

// Key is a slash-separated cache key. Invalidation matches whole segments.
type Key string

const (
	KeyProducts          Key = "products"
	KeyArtists           Key = "artists"
	KeyArtist            Key = "artist"
	KeyCallerProfile     Key = "currentUserProfile"
	KeyCallerRole        Key = "callerUserRole"
	KeyCommissionRate    Key = "commissionRate"
	KeyPaymentConfigured Key = "stripeConfigured"
	KeyAdminAccount      Key = "adminStripeAccountId"
	KeyStoreSettings     Key = "storeSettings"
)

// Join appends segments to k.
func (k Key) Join(segments ...string) Key {
	if len(segments) == 0 {
		return k
	}
	return Key(string(k) + "/" + strings.Join(segments, "/"))
}

// Covers reports whether k equals prefix or lies below it.
func (k Key) Covers(prefix Key) bool {
	if prefix == "" || k == prefix {
		return true
	}
	return strings.HasPrefix(string(k), string(prefix)+"/")
}

func Product(id string) Key        { return KeyProducts.Join("item", id) }
func ArtistProducts(id string) Key { return KeyProducts.Join("artist", id) }
func Artist(id string) Key         { return KeyArtist.Join(id) }
func StoreSettings(id string) Key  { return KeyStoreSettings.Join(id) }
