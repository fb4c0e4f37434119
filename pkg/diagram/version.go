package diagram

// Version is the library version stamped into rendered output.
const Version = "0.4.0"
