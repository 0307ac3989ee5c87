package auth

// MaskScript hides the markers identity providers use to refuse embedded
// browsers. It runs at document start in the top frame of the content view.
const MaskScript = `(() => {
  const define = (obj, prop, value) => {
    try {
      Object.defineProperty(obj, prop, { get: () => value, configurable: true });
    } catch (_) {}
  };
  define(Navigator.prototype, 'webdriver', false);
  define(Navigator.prototype, 'languages', ['en-US', 'en']);
  define(Navigator.prototype, 'plugins', [1, 2, 3, 4, 5]);
  if (!window.chrome) {
    window.chrome = { runtime: {}, app: { isInstalled: false } };
  }
  delete window.webkit;
})();`
