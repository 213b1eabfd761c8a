package common

// AuthTokenHeaderName is the HTTP header carrying the raw signed token on
// protected requests. No "Bearer" prefix is used.
const AuthTokenHeaderName = "auth-token"

// CartSlots is the fixed number of cart positions every user record holds.
// Slots are keyed "0".."299" and map to product ids.
const CartSlots = 300
