package router

import "github.com/juan-009/authguard/core/handler"

// methodTyp is a bitmask identifying one or more HTTP methods a route
// responds to. mALL and mSTUB are synthetic bits: mALL marks a
// catch-all registration (Handle), mSTUB marks a mount point stub
// whose pattern is used to strip the matched prefix before delegating
// to a sub-router.
type methodTyp uint16

const (
	mCONNECT methodTyp = 1 << iota
	mDELETE
	mGET
	mHEAD
	mOPTIONS
	mPATCH
	mPOST
	mPUT
	mTRACE
	mALL
	mSTUB
)

// realMethods enumerates the concrete HTTP-method bits, in a stable
// order used when building the Allow header and route listings.
var realMethods = []methodTyp{mCONNECT, mDELETE, mGET, mHEAD, mOPTIONS, mPATCH, mPOST, mPUT, mTRACE}

var methodMap = map[string]methodTyp{
	"CONNECT": mCONNECT,
	"DELETE":  mDELETE,
	"GET":     mGET,
	"HEAD":    mHEAD,
	"OPTIONS": mOPTIONS,
	"PATCH":   mPATCH,
	"POST":    mPOST,
	"PUT":     mPUT,
	"TRACE":   mTRACE,
}

var reverseMethodMap = map[methodTyp]string{
	mCONNECT: "CONNECT",
	mDELETE:  "DELETE",
	mGET:     "GET",
	mHEAD:    "HEAD",
	mOPTIONS: "OPTIONS",
	mPATCH:   "PATCH",
	mPOST:    "POST",
	mPUT:     "PUT",
	mTRACE:   "TRACE",
	mALL:     "*",
}

// chain wraps fn with middlewares, applied in registration order so the
// first middleware passed is the outermost caller.
func chain[C handler.Context](middlewares []handler.Middleware[C], fn handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	wrapped := fn
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
