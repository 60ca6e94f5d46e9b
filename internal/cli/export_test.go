package cli

// Export internal functions for testing.

// RunCDRs exports runCDRs for testing.
var RunCDRs = runCDRs

// RunRecordings exports runRecordings for testing.
var RunRecordings = runRecordings

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// ResolveCredentials exports resolveCredentials for testing.
var ResolveCredentials = resolveCredentials

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ValidConfigKeys exports validConfigKeys for testing.
var ValidConfigKeys = validConfigKeys

// CDRHeader exports cdrHeader for testing.
const CDRHeader = cdrHeader

// RecordingHeader exports recordingHeader for testing.
const RecordingHeader = recordingHeader
