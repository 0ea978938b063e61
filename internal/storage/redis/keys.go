package redis

import "github.com/simon-kyger/crewbattle/internal/model"

const keyPrefix = "crewbattle:"

func userKey(username model.Identity) string {
	return keyPrefix + "user:" + string(username)
}
