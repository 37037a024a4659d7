// Package nav holds the screen-routing policy as a pure state machine, so the
// rules about when the capture screen is forced can be tested without any UI.
package nav

// Screen identifies one of the app's screens.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenSurvey
	ScreenCapture
	ScreenHome
	ScreenExplore
	ScreenFriends
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenSurvey:
		return "survey"
	case ScreenCapture:
		return "capture"
	case ScreenHome:
		return "home"
	case ScreenExplore:
		return "explore"
	case ScreenFriends:
		return "friends"
	default:
		return "unknown"
	}
}

// Event is a navigation trigger. The concrete types below are the only
// transitions the app knows.
type Event interface{ isNavEvent() }

// AppStarted fires once at launch.
type AppStarted struct {
	Authenticated bool
	HasPhotoToday bool
}

// LoggedIn fires after a successful login or registration.
type LoggedIn struct{ HasPhotoToday bool }

// LoggedOut fires when the session is discarded.
type LoggedOut struct{}

// SwitchedToRegister and SwitchedToLogin toggle between the auth screens.
type SwitchedToRegister struct{}
type SwitchedToLogin struct{}

// HomeRendered fires every time the home screen is drawn. If today's photo is
// missing the user is pushed straight to capture; the home screen is never
// shown for more than an instant otherwise.
type HomeRendered struct{ HasPhotoToday bool }

// CaptureEntered fires when the capture screen is shown. If today's photo
// already exists the screen bounces back home instead of allowing a duplicate.
type CaptureEntered struct{ HasPhotoToday bool }

// PhotoCaptured fires after a capture was appended to the history.
type PhotoCaptured struct{}

// SurveySubmitted fires when the wellness check-in produced a prompt; the
// capture screen is shown next, carrying it.
type SurveySubmitted struct{}

// Navigated is an explicit tab change (home, explore, friends, survey).
type Navigated struct{ To Screen }

func (AppStarted) isNavEvent()         {}
func (LoggedIn) isNavEvent()           {}
func (LoggedOut) isNavEvent()          {}
func (SwitchedToRegister) isNavEvent() {}
func (SwitchedToLogin) isNavEvent()    {}
func (HomeRendered) isNavEvent()       {}
func (CaptureEntered) isNavEvent()     {}
func (PhotoCaptured) isNavEvent()      {}
func (SurveySubmitted) isNavEvent()    {}
func (Navigated) isNavEvent()          {}

// Transition returns the screen to show after event fires in current. Events
// that do not apply to the current screen leave it unchanged.
func Transition(current Screen, event Event) Screen {
	switch ev := event.(type) {
	case AppStarted:
		return landing(ev.Authenticated, ev.HasPhotoToday)
	case LoggedIn:
		return landing(true, ev.HasPhotoToday)
	case LoggedOut:
		return ScreenLogin
	case SwitchedToRegister:
		if current == ScreenLogin {
			return ScreenRegister
		}
	case SwitchedToLogin:
		if current == ScreenRegister {
			return ScreenLogin
		}
	case HomeRendered:
		if current == ScreenHome && !ev.HasPhotoToday {
			return ScreenCapture
		}
	case CaptureEntered:
		if current == ScreenCapture && ev.HasPhotoToday {
			return ScreenHome
		}
	case PhotoCaptured:
		if current == ScreenCapture {
			return ScreenHome
		}
	case SurveySubmitted:
		if current == ScreenSurvey {
			return ScreenCapture
		}
	case Navigated:
		switch current {
		case ScreenLogin, ScreenRegister:
			// Tabs are only reachable once authenticated.
		default:
			return ev.To
		}
	}
	return current
}

func landing(authenticated, hasPhotoToday bool) Screen {
	if !authenticated {
		return ScreenLogin
	}
	if !hasPhotoToday {
		return ScreenCapture
	}
	return ScreenHome
}
