package common

// LastUpdateTimeKey is the metadata key tracking the newest local mutation
// timestamp (epoch milliseconds). The sync collaborator reads it to decide
// what to pull.
const LastUpdateTimeKey = "last_update_time"
