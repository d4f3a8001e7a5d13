package core

import (
	"errors"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Handwritten MUS serializers for the persisted session blob. The state model
// is three small types, so the serializers are maintained by hand instead of
// generated.

var errNegativeLength = errors.New("negative length")

// UserMUS serializes User.
var UserMUS = userMUS{}

type userMUS struct{}

func (s userMUS) Marshal(u User, bs []byte) (n int) {
	n = ord.String.Marshal(u.Username, bs)
	n += ord.String.Marshal(u.DisplayName, bs[n:])
	return
}

func (s userMUS) Unmarshal(bs []byte) (u User, n int, err error) {
	u.Username, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	u.DisplayName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s userMUS) Size(u User) (size int) {
	size = ord.String.Size(u.Username)
	size += ord.String.Size(u.DisplayName)
	return
}

// UserProfileMUS serializes UserProfile.
var UserProfileMUS = userProfileMUS{}

type userProfileMUS struct{}

func (s userProfileMUS) Marshal(p UserProfile, bs []byte) (n int) {
	n = varint.Int.Marshal(len(p.SearchHistory), bs)
	for _, q := range p.SearchHistory {
		n += ord.String.Marshal(q, bs[n:])
	}
	n += varint.Int.Marshal(len(p.ClickedDocuments), bs[n:])
	for id, count := range p.ClickedDocuments {
		n += ord.String.Marshal(id, bs[n:])
		n += varint.Int.Marshal(count, bs[n:])
	}
	return
}

func (s userProfileMUS) Unmarshal(bs []byte) (p UserProfile, n int, err error) {
	var length, n1 int
	length, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		err = errNegativeLength
		return
	}
	p.SearchHistory = make([]string, 0, length)
	for i := 0; i < length; i++ {
		var q string
		q, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		p.SearchHistory = append(p.SearchHistory, q)
	}
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length < 0 {
		err = errNegativeLength
		return
	}
	p.ClickedDocuments = make(map[string]int, length)
	for i := 0; i < length; i++ {
		var id string
		var count int
		id, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		count, n1, err = varint.Int.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		p.ClickedDocuments[id] = count
	}
	return
}

func (s userProfileMUS) Size(p UserProfile) (size int) {
	size = varint.Int.Size(len(p.SearchHistory))
	for _, q := range p.SearchHistory {
		size += ord.String.Size(q)
	}
	size += varint.Int.Size(len(p.ClickedDocuments))
	for id, count := range p.ClickedDocuments {
		size += ord.String.Size(id)
		size += varint.Int.Size(count)
	}
	return
}

// SessionStateMUS serializes SessionState.
var SessionStateMUS = sessionStateMUS{}

type sessionStateMUS struct{}

func (s sessionStateMUS) Marshal(st SessionState, bs []byte) (n int) {
	n = ord.Bool.Marshal(st.Authenticated, bs)
	n += ord.Bool.Marshal(st.CurrentUser != nil, bs[n:])
	if st.CurrentUser != nil {
		n += UserMUS.Marshal(*st.CurrentUser, bs[n:])
	}
	n += varint.Int.Marshal(len(st.Users), bs[n:])
	for name, profile := range st.Users {
		n += ord.String.Marshal(name, bs[n:])
		if profile == nil {
			profile = NewUserProfile()
		}
		n += UserProfileMUS.Marshal(*profile, bs[n:])
	}
	return
}

func (s sessionStateMUS) Unmarshal(bs []byte) (st SessionState, n int, err error) {
	var n1 int
	st.Authenticated, n, err = ord.Bool.Unmarshal(bs)
	if err != nil {
		return
	}
	var hasUser bool
	hasUser, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if hasUser {
		var u User
		u, n1, err = UserMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		st.CurrentUser = &u
	}
	var length int
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length < 0 {
		err = errNegativeLength
		return
	}
	st.Users = make(map[string]*UserProfile, length)
	for i := 0; i < length; i++ {
		var name string
		var profile UserProfile
		name, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		profile, n1, err = UserProfileMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		st.Users[name] = &profile
	}
	return
}

func (s sessionStateMUS) Size(st SessionState) (size int) {
	size = ord.Bool.Size(st.Authenticated)
	size += ord.Bool.Size(st.CurrentUser != nil)
	if st.CurrentUser != nil {
		size += UserMUS.Size(*st.CurrentUser)
	}
	size += varint.Int.Size(len(st.Users))
	for name, profile := range st.Users {
		size += ord.String.Size(name)
		if profile == nil {
			profile = NewUserProfile()
		}
		size += UserProfileMUS.Size(*profile)
	}
	return
}
