package common

// AuthorizationHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const AuthorizationHeaderName = "authorization"

// InvalidCredentialsMessage is the only message a caller ever sees for a
// failed password check, whether the email exists or not.
const InvalidCredentialsMessage = "Invalid email or password."
