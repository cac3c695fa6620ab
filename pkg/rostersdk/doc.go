/*
Package rostersdk is the Go client for the roster user-management service.

It also holds the wire types shared by the server handlers, so a request
that validates here validates the same way on the server.

# Client and Session

Client covers the anonymous endpoints (register, login, bootstrap, health,
JWKS). A successful Login returns a Session that carries the bearer token
for everything else:

	client := rostersdk.NewClient("https://roster.example.com")

	session, err := client.Login(ctx, rostersdk.LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret1!",
	})
	if err != nil {
		var apiErr *rostersdk.APIError
		if errors.As(err, &apiErr) && apiErr.Code == rostersdk.ErrorCodeMFARequired {
			// retry with LoginRequest.Code set from the authenticator app
		}
		return err
	}

	users, err := session.ListUsers(ctx, rostersdk.ListUsersParams{Search: "ali"})

Sessions do not refresh. When the token expires (12h by default) the
server answers 401 and the caller logs in again.

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status,
the machine readable code and, for validation failures, per-field details.
*/
package rostersdk
