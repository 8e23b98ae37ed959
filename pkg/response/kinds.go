package response

import "net/http"

// Kind enumerates every failure the API can report. Each kind carries its
// HTTP status class, the symbolic message returned in the envelope and a
// default human-readable details string.
type Kind int

const (
	KindInternal Kind = iota

	// Validation failures (400)
	KindUsernameEmpty
	KindUsernameTooShort
	KindUsernameTooLong
	KindPictureInvalidURL
	KindAuthIDEmpty
	KindServerNameEmpty
	KindServerNameTooLong
	KindServerDescriptionTooLong
	KindChannelNameEmpty
	KindChannelNameTooLong
	KindChannelTypeInvalid
	KindChannelUnchanged
	KindTooManyChannels
	KindMessageEmpty
	KindMessageTooLong
	KindMessageUnchanged
	KindInvalidInviteCode

	// Not-found failures (404)
	KindUnknownUser
	KindUnknownServer
	KindUnknownChannel
	KindUnknownMessage
	KindUserNotMember

	// Authorization failures (403)
	KindUserNotAuthorized

	// Conflict (409)
	KindMemberAlreadyExists

	// State-conflict failures (410)
	KindMessageDeleted
	KindInviteCodeExpired
	KindInviteCodeMaxUsesExceeded
)

type kindInfo struct {
	status  int
	symbol  string
	details string
}

var kinds = [...]kindInfo{
	KindInternal: {http.StatusInternalServerError, "SERVER_ERROR", "An unexpected error occurred while processing the request"},

	KindUsernameEmpty:            {http.StatusBadRequest, "USERNAME_EMPTY", "The username cannot be empty"},
	KindUsernameTooShort:         {http.StatusBadRequest, "USERNAME_TOO_SHORT", "The username must be at least 2 characters long"},
	KindUsernameTooLong:          {http.StatusBadRequest, "USERNAME_TOO_LONG", "The username cannot exceed 20 characters"},
	KindPictureInvalidURL:        {http.StatusBadRequest, "PICTURE_INVALID_URL", "The picture URL is invalid"},
	KindAuthIDEmpty:              {http.StatusBadRequest, "AUTH_ID_EMPTY", "The authentication ID cannot be empty"},
	KindServerNameEmpty:          {http.StatusBadRequest, "SERVER_NAME_EMPTY", "The server name cannot be empty"},
	KindServerNameTooLong:        {http.StatusBadRequest, "SERVER_NAME_TOO_LONG", "The server name cannot exceed 50 characters"},
	KindServerDescriptionTooLong: {http.StatusBadRequest, "SERVER_DESCRIPTION_TOO_LONG", "The server description cannot exceed 200 characters"},
	KindChannelNameEmpty:         {http.StatusBadRequest, "CHANNEL_NAME_EMPTY", "The channel name cannot be empty"},
	KindChannelNameTooLong:       {http.StatusBadRequest, "CHANNEL_NAME_TOO_LONG", "The channel name cannot exceed 32 characters"},
	KindChannelTypeInvalid:       {http.StatusBadRequest, "CHANNEL_TYPE_INVALID", `The specified channel type is invalid, allowed types are "text" and "vocal"`},
	KindChannelUnchanged:         {http.StatusBadRequest, "CHANNEL_UNCHANGED", "At least one of name or type must be provided"},
	KindTooManyChannels:          {http.StatusBadRequest, "TOO_MANY_CHANNELS", "The server has reached the maximum number of channels"},
	KindMessageEmpty:             {http.StatusBadRequest, "MESSAGE_EMPTY", "The message content cannot be empty"},
	KindMessageTooLong:           {http.StatusBadRequest, "MESSAGE_TOO_LONG", "The message content exceeds the maximum allowed length of 1000 characters"},
	KindMessageUnchanged:         {http.StatusBadRequest, "MESSAGE_UNCHANGED", "No changes were made to the message content"},
	KindInvalidInviteCode:        {http.StatusBadRequest, "INVALID_INVITE_CODE", "The provided invite code is invalid"},

	KindUnknownUser:    {http.StatusNotFound, "UNKNOWN_USER", "The specified user could not be found in the database"},
	KindUnknownServer:  {http.StatusNotFound, "UNKNOWN_SERVER", "The specified server could not be found in the database"},
	KindUnknownChannel: {http.StatusNotFound, "UNKNOWN_CHANNEL", "The specified channel could not be found in the database"},
	KindUnknownMessage: {http.StatusNotFound, "UNKNOWN_MESSAGE", "The specified message could not be found in the database"},
	KindUserNotMember:  {http.StatusNotFound, "USER_NOT_MEMBER", "The user is not a member of the specified server"},

	KindUserNotAuthorized: {http.StatusForbidden, "USER_NOT_AUTHORIZED", "You do not have the necessary permissions to perform this action"},

	KindMemberAlreadyExists: {http.StatusConflict, "MEMBER_ALREADY_EXISTS", "The user is already a member of this server"},

	KindMessageDeleted:            {http.StatusGone, "MESSAGE_DELETED", "The message has been deleted and cannot be accessed"},
	KindInviteCodeExpired:         {http.StatusGone, "INVITE_CODE_EXPIRED", "The invite code has expired and cannot be used"},
	KindInviteCodeMaxUsesExceeded: {http.StatusGone, "INVITE_CODE_MAX_USES_EXCEEDED", "The maximum number of uses for this invite code has been reached"},
}

// HTTPStatus returns the numeric code class of the kind.
func (k Kind) HTTPStatus() int { return kinds[k].status }

// Symbol returns the symbolic message code, e.g. UNKNOWN_USER.
func (k Kind) Symbol() string { return kinds[k].symbol }

// Details returns the default details string of the kind.
func (k Kind) Details() string { return kinds[k].details }
